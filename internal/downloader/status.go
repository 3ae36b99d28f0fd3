package downloader

import (
	"os"
	"path/filepath"

	"seqfetch/internal/accession"
)

// Status classifies a run's on-disk state.
type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusPartial    Status = "partial"
	StatusMissing    Status = "missing"
)

// Status inspects the output directory and reports per-run download state.
// Purely advisory: it reads the filesystem and never touches the pipeline.
func (d *Downloader) Status(runs []accession.Run) map[accession.Run]Status {
	return InspectStatus(d.cfg.OutputDir, runs)
}

// InspectStatus reports run state for an arbitrary output directory. Decoded
// FASTQ output (single or split pair) means downloaded; a leftover archive
// under the run's subdirectory means partial; neither means missing.
func InspectStatus(outputDir string, runs []accession.Run) map[accession.Run]Status {
	states := make(map[accession.Run]Status, len(runs))
	for _, run := range accession.Dedupe(runs) {
		states[run] = inspectRun(outputDir, run)
	}
	return states
}

func inspectRun(outputDir string, run accession.Run) Status {
	candidates := []string{
		filepath.Join(outputDir, string(run)+".fastq"),
		filepath.Join(outputDir, string(run)+"_1.fastq"),
		filepath.Join(outputDir, string(run)+"_2.fastq"),
	}
	for _, path := range candidates {
		if fileExists(path) {
			return StatusDownloaded
		}
	}
	if fileExists(filepath.Join(outputDir, string(run), string(run)+".sra")) {
		return StatusPartial
	}
	return StatusMissing
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
