package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"seqfetch/internal/config"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptForInput walks an interactive session when download is invoked with
// no input flags on a terminal. It fills in the run source and may override
// the output directory, worker count, and split setting on cfg.
func promptForInput(cmd *cobra.Command, cfg *config.Config) (downloadInput, bool, error) {
	if !stdinIsTerminal() {
		return downloadInput{}, false, fmt.Errorf("no input specified; use --gse, --runs, or --list")
	}
	return runPrompts(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), cfg)
}

// runPrompts drives the prompt sequence against explicit reader/writer so the
// flow is testable without a terminal.
func runPrompts(reader *bufio.Reader, out io.Writer, cfg *config.Config) (downloadInput, bool, error) {
	value, err := promptLine(reader, out, "GEO series (GSE...) or run accessions: ", "")
	if err != nil {
		return downloadInput{}, false, err
	}
	if value == "" {
		return downloadInput{}, false, fmt.Errorf("no input provided")
	}
	input := downloadInput{Runs: value}
	if strings.HasPrefix(strings.ToUpper(value), "GSE") {
		input = downloadInput{Series: value}
	}

	outputDir, err := promptLine(reader, out,
		fmt.Sprintf("Output directory [%s]: ", cfg.Paths.OutputDir), cfg.Paths.OutputDir)
	if err != nil {
		return downloadInput{}, false, err
	}
	expanded, err := config.ExpandPath(outputDir)
	if err != nil {
		return downloadInput{}, false, err
	}
	cfg.Paths.OutputDir = expanded

	workersValue, err := promptLine(reader, out,
		fmt.Sprintf("Workers (1-%d) [%d]: ", config.MaxWorkers, cfg.Download.Workers),
		strconv.Itoa(cfg.Download.Workers))
	if err != nil {
		return downloadInput{}, false, err
	}
	workers, err := strconv.Atoi(workersValue)
	if err != nil || workers < 1 || workers > config.MaxWorkers {
		return downloadInput{}, false, fmt.Errorf("workers must be a number between 1 and %d", config.MaxWorkers)
	}
	cfg.Download.Workers = workers

	splitDefault := "y"
	if !cfg.Download.SplitFiles {
		splitDefault = "n"
	}
	splitValue, err := promptLine(reader, out,
		fmt.Sprintf("Split paired-end reads? (y/n) [%s]: ", splitDefault), splitDefault)
	if err != nil {
		return downloadInput{}, false, err
	}
	split := strings.HasPrefix(strings.ToLower(splitValue), "y")

	return input, split, nil
}

func promptLine(reader *bufio.Reader, out io.Writer, prompt, fallback string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" && err != io.EOF {
		return "", fmt.Errorf("read input: %w", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return fallback, nil
	}
	return value, nil
}
