package accession

import (
	"fmt"
	"regexp"
	"strings"
)

// Run identifies one sequencing run in the SRA archive (SRR/ERR/DRR prefix).
// The token is opaque beyond format validation at the boundary.
type Run string

// Series identifies a GEO dataset series (GSE prefix).
type Series string

var (
	runPattern      = regexp.MustCompile(`^(SRR|ERR|DRR)\d+$`)
	runTokenPattern = regexp.MustCompile(`(SRR|ERR|DRR)\d+`)
	seriesPattern   = regexp.MustCompile(`^GSE\d+$`)
)

// ParseRun validates a single run accession token.
func ParseRun(raw string) (Run, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if !runPattern.MatchString(token) {
		return "", fmt.Errorf("invalid run accession %q (expected SRR/ERR/DRR followed by digits)", raw)
	}
	return Run(token), nil
}

// ParseSeries validates a GEO series identifier.
func ParseSeries(raw string) (Series, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if !seriesPattern.MatchString(token) {
		return "", fmt.Errorf("invalid series identifier %q (expected GSE followed by digits)", raw)
	}
	return Series(token), nil
}

// FindRuns extracts every run accession token embedded in free text. The SRA
// summary service reports runs inside prose-like fields, so extraction is a
// pattern match rather than structured parsing.
func FindRuns(text string) []Run {
	matches := runTokenPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	runs := make([]Run, 0, len(matches))
	for _, m := range matches {
		runs = append(runs, Run(m))
	}
	return runs
}

// ParseRunList parses a comma or whitespace separated accession list as typed
// on the command line. Duplicates are dropped, first occurrence wins.
func ParseRunList(raw string) ([]Run, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no run accessions provided")
	}
	runs := make([]Run, 0, len(fields))
	seen := make(map[Run]struct{}, len(fields))
	for _, field := range fields {
		run, err := ParseRun(field)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[run]; ok {
			continue
		}
		seen[run] = struct{}{}
		runs = append(runs, run)
	}
	return runs, nil
}

// Dedupe removes duplicate runs preserving first-occurrence order.
func Dedupe(runs []Run) []Run {
	if len(runs) < 2 {
		return runs
	}
	out := make([]Run, 0, len(runs))
	seen := make(map[Run]struct{}, len(runs))
	for _, run := range runs {
		if _, ok := seen[run]; ok {
			continue
		}
		seen[run] = struct{}{}
		out = append(out, run)
	}
	return out
}

// Strings converts runs to their string form, mainly for logging and joins.
func Strings(runs []Run) []string {
	out := make([]string, len(runs))
	for i, run := range runs {
		out[i] = string(run)
	}
	return out
}
