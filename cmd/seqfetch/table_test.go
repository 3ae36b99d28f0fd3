package main

import (
	"strings"
	"testing"
)

func TestRunTableRendersRows(t *testing.T) {
	out := runTable("Outcome", [][2]string{{"SRR1", "ok"}, {"SRR2", "failed"}})
	for _, want := range []string{"Run", "Outcome", "SRR1", "ok", "SRR2", "failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSessionTableRightAlignsTallies(t *testing.T) {
	out := sessionTable([]sessionRow{
		{ID: "s1", Series: "GSE12345", Started: "2026-08-30T10:00:00Z", Total: 100, Succeeded: 99, Failed: 1},
		{ID: "s2", Series: "-", Started: "2026-08-30T11:00:00Z", Total: 5, Succeeded: 5, Failed: 0},
	})
	if !strings.Contains(out, "Session") || !strings.Contains(out, "100") {
		t.Fatalf("unexpected rendering:\n%s", out)
	}
	// A one-digit tally in the Total column sits flush right under the
	// wider values, so padding precedes it.
	if !strings.Contains(out, "  5 ") {
		t.Fatalf("tallies should be right-aligned:\n%s", out)
	}
}
