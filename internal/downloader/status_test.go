package downloader

import (
	"os"
	"path/filepath"
	"testing"

	"seqfetch/internal/accession"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestInspectStatus(t *testing.T) {
	out := t.TempDir()
	touch(t, filepath.Join(out, "SRR1.fastq"))
	touch(t, filepath.Join(out, "SRR2", "SRR2.sra"))
	touch(t, filepath.Join(out, "SRR4_1.fastq"))
	touch(t, filepath.Join(out, "SRR4_2.fastq"))

	states := InspectStatus(out, []accession.Run{"SRR1", "SRR2", "SRR3", "SRR4"})

	want := map[accession.Run]Status{
		"SRR1": StatusDownloaded,
		"SRR2": StatusPartial,
		"SRR3": StatusMissing,
		"SRR4": StatusDownloaded,
	}
	for run, status := range want {
		if states[run] != status {
			t.Errorf("%s = %s, want %s", run, states[run], status)
		}
	}
}

func TestInspectStatusNoPrefixCollision(t *testing.T) {
	out := t.TempDir()
	touch(t, filepath.Join(out, "SRR10.fastq"))

	states := InspectStatus(out, []accession.Run{"SRR1", "SRR10"})
	if states["SRR1"] != StatusMissing {
		t.Fatalf("SRR1 = %s, want missing", states["SRR1"])
	}
	if states["SRR10"] != StatusDownloaded {
		t.Fatalf("SRR10 = %s, want downloaded", states["SRR10"])
	}
}

func TestInspectStatusDirectoryIsNotAFile(t *testing.T) {
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(out, "SRR7.fastq"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	states := InspectStatus(out, []accession.Run{"SRR7"})
	if states["SRR7"] != StatusMissing {
		t.Fatalf("SRR7 = %s, want missing", states["SRR7"])
	}
}

func TestDownloaderStatusUsesConfiguredDir(t *testing.T) {
	tk := newFakeToolkit()
	d, out := newTestDownloader(t, tk, 1)
	touch(t, filepath.Join(out, "DRR9.fastq"))

	states := d.Status([]accession.Run{"DRR9"})
	if states["DRR9"] != StatusDownloaded {
		t.Fatalf("DRR9 = %s, want downloaded", states["DRR9"])
	}
}
