package accession

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseRun(t *testing.T) {
	cases := []struct {
		in      string
		want    Run
		wantErr bool
	}{
		{in: "SRR1234567", want: "SRR1234567"},
		{in: "  err42 ", want: "ERR42"},
		{in: "DRR000001", want: "DRR000001"},
		{in: "SRX123", wantErr: true},
		{in: "SRR", wantErr: true},
		{in: "", wantErr: true},
		{in: "SRR12a3", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseRun(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRun(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRun(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRun(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseSeries(t *testing.T) {
	if _, err := ParseSeries("GSE123456"); err != nil {
		t.Fatalf("valid series rejected: %v", err)
	}
	if got, err := ParseSeries("gse98765"); err != nil || got != "GSE98765" {
		t.Fatalf("expected normalized GSE98765, got %q err %v", got, err)
	}
	for _, bad := range []string{"GSE", "SRR123", "GSE12x", ""} {
		if _, err := ParseSeries(bad); err == nil {
			t.Fatalf("ParseSeries(%q): expected error", bad)
		}
	}
}

func TestFindRuns(t *testing.T) {
	text := "Run: SRR100 and SRR200;ERR300 trailing DRR400."
	runs := FindRuns(text)
	want := []Run{"SRR100", "SRR200", "ERR300", "DRR400"}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %v", len(want), runs)
	}
	for i, run := range want {
		if runs[i] != run {
			t.Fatalf("runs[%d] = %q, want %q", i, runs[i], run)
		}
	}
	if FindRuns("no accessions here") != nil {
		t.Fatal("expected nil for text without tokens")
	}
}

func TestParseRunList(t *testing.T) {
	runs, err := ParseRunList("SRR1, SRR2,SRR1\tERR3")
	if err != nil {
		t.Fatalf("ParseRunList: %v", err)
	}
	want := []Run{"SRR1", "SRR2", "ERR3"}
	if len(runs) != len(want) {
		t.Fatalf("expected %v, got %v", want, runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("runs[%d] = %q, want %q", i, runs[i], want[i])
		}
	}

	if _, err := ParseRunList("SRR1, bogus"); err == nil {
		t.Fatal("expected error for invalid token")
	}
	if _, err := ParseRunList("  "); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestReadListFileFormats(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "runs.txt")
	writeFile(t, txt, "# comment\nSRR1\n\nSRR2\nSRR1\n")
	runs, err := ReadListFile(txt)
	if err != nil {
		t.Fatalf("txt: %v", err)
	}
	if len(runs) != 2 || runs[0] != "SRR1" || runs[1] != "SRR2" {
		t.Fatalf("txt: unexpected runs %v", runs)
	}

	csv := filepath.Join(dir, "runs.csv")
	writeFile(t, csv, "SRR10,sampleA\nSRR11,sampleB\n")
	runs, err = ReadListFile(csv)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(runs) != 2 || runs[0] != "SRR10" {
		t.Fatalf("csv: unexpected runs %v", runs)
	}

	tsv := filepath.Join(dir, "runs.tsv")
	writeFile(t, tsv, "ERR20\tsampleC\n")
	runs, err = ReadListFile(tsv)
	if err != nil {
		t.Fatalf("tsv: %v", err)
	}
	if len(runs) != 1 || runs[0] != "ERR20" {
		t.Fatalf("tsv: unexpected runs %v", runs)
	}
}

func TestReadListFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadListFile(filepath.Join(dir, "runs.xlsx")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if _, err := ReadListFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.txt")
	writeFile(t, bad, "SRR1\nnot-an-accession\n")
	if _, err := ReadListFile(bad); err == nil {
		t.Fatal("expected error for invalid accession line")
	}

	empty := filepath.Join(dir, "empty.txt")
	writeFile(t, empty, "# only comments\n\n")
	if _, err := ReadListFile(empty); err == nil {
		t.Fatal("expected error for file without accessions")
	}
}

func TestDedupe(t *testing.T) {
	runs := Dedupe([]Run{"SRR1", "SRR2", "SRR1", "SRR3", "SRR2"})
	if len(runs) != 3 {
		t.Fatalf("expected 3 unique runs, got %v", runs)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
