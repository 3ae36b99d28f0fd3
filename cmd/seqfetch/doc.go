// Command seqfetch resolves GEO series identifiers to SRA run accessions and
// downloads the sequencing data through the SRA Toolkit.
package main
