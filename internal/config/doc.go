// Package config loads, normalizes, and validates seqfetch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/seqfetch/config.toml or a
// project-local seqfetch.toml. Always obtain settings through this package so
// downstream code receives sanitized paths and clear validation errors.
package config
