// Package accession defines the run and series accession tokens seqfetch
// operates on, plus boundary validation and list-file parsing.
package accession
