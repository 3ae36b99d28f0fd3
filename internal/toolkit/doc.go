// Package toolkit invokes the external SRA Toolkit executables (prefetch,
// fasterq-dump) that perform the actual data transfer and FASTQ decoding.
//
// The command runner primitive is free of retry and domain logic so it can be
// exercised with fake commands; retry behavior is an explicit policy (max
// attempts, fixed delay, per-attempt timeout) applied around it. Both
// executables are verified present and executable at construction time.
package toolkit
