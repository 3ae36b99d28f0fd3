// Package logging assembles structured slog loggers shared across seqfetch
// components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with run accessions, step names, and session identifiers. The console
// handler serializes writes behind a mutex so progress lines from concurrent
// download workers stay single-line-atomic. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
