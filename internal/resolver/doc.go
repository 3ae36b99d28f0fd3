// Package resolver turns GEO series identifiers into SRA run accessions via
// the NCBI E-utilities API (esearch, elink, esummary).
//
// Remote calls are paced to respect NCBI's documented request ceiling and
// retried with exponential backoff. Per the upstream contract, empty and
// malformed responses degrade to empty results; only total chain failure is
// reported as a ResolutionError.
package resolver
