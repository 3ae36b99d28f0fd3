package accession

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var listExtensions = map[string]struct{}{
	".txt": {},
	".csv": {},
	".tsv": {},
}

// ReadListFile loads run accessions from a .txt, .csv, or .tsv file with one
// accession per line. Blank lines and lines starting with '#' are skipped; for
// delimited formats only the first column is used. Duplicates are dropped.
func ReadListFile(path string) ([]Run, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := listExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported list file %q (expected .txt, .csv, or .tsv)", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	var runs []Run
	seen := make(map[Run]struct{})
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		run, err := ParseRun(firstColumn(line, ext))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if _, ok := seen[run]; ok {
			continue
		}
		seen[run] = struct{}{}
		runs = append(runs, run)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("list file %q contains no run accessions", path)
	}
	return runs, nil
}

func firstColumn(line, ext string) string {
	switch ext {
	case ".csv":
		if idx := strings.IndexByte(line, ','); idx >= 0 {
			return line[:idx]
		}
	case ".tsv":
		if idx := strings.IndexByte(line, '\t'); idx >= 0 {
			return line[:idx]
		}
	}
	return line
}
