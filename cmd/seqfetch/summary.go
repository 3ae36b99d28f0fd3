package main

import (
	"fmt"
	"sort"

	"seqfetch/internal/accession"
)

// renderOutcomes formats the per-run download results as a table followed by
// a one-line tally.
func renderOutcomes(results map[accession.Run]bool) string {
	runs := make([]accession.Run, 0, len(results))
	for run := range results {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i] < runs[j] })

	rows := make([][2]string, 0, len(runs))
	succeeded := 0
	for _, run := range runs {
		outcome := "failed"
		if results[run] {
			outcome = "ok"
			succeeded++
		}
		rows = append(rows, [2]string{string(run), outcome})
	}

	tally := fmt.Sprintf("%d succeeded, %d failed", succeeded, len(runs)-succeeded)
	return runTable("Outcome", rows) + "\n" + tally
}
