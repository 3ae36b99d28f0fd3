// Package downloader coordinates parallel fetch/decode pipelines over the
// external SRA Toolkit.
//
// A bounded worker pool (1-16 workers) processes each run accession exactly
// once through a strictly sequential pipeline: fetch the archive, decode it
// to FASTQ, then best-effort cleanup of the intermediate artifact. Failures
// are absorbed per run into a boolean outcome map; nothing a single pipeline
// does can abort its siblings. A read-only status query classifies runs as
// downloaded, partial, or missing from the filesystem alone.
package downloader
