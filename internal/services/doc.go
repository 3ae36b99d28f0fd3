// Package services holds the shared error taxonomy and context annotations
// used across seqfetch components.
//
// Sentinel errors tag failures by kind (external tool, timeout, transient,
// configuration) so boundaries can classify them with errors.Is instead of
// string matching. Context helpers carry the run accession, pipeline step,
// and session identifier so loggers can tag every line consistently.
package services
