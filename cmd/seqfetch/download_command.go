package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"seqfetch/internal/accession"
	"seqfetch/internal/config"
	"seqfetch/internal/downloader"
	"seqfetch/internal/history"
	"seqfetch/internal/logging"
	"seqfetch/internal/services"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var (
		seriesFlag string
		runsFlag   string
		listFlag   string
		outputFlag string
		workers    int
		split      bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download sequencing runs for a GEO series or explicit accessions",
		Long: `Download resolves the requested runs, then fetches and decodes each one
through the SRA Toolkit using a bounded worker pool. Runs may come from a GEO
series (--gse), a comma separated list (--runs), a list file (--list), or any
combination; duplicates are downloaded once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("output") {
				expanded, err := config.ExpandPath(outputFlag)
				if err != nil {
					return err
				}
				cfg.Paths.OutputDir = expanded
			}
			if cmd.Flags().Changed("workers") {
				cfg.Download.Workers = workers
			}
			splitFiles := cfg.Download.SplitFiles
			if cmd.Flags().Changed("split") {
				splitFiles = split
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			input := downloadInput{Series: seriesFlag, Runs: runsFlag, List: listFlag}
			if input.empty() {
				prompted, promptedSplit, err := promptForInput(cmd, cfg)
				if err != nil {
					return err
				}
				input = prompted
				splitFiles = promptedSplit
			}

			runs, series, err := gatherRuns(runCtx, cfg, logger, input)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs to download")
				return nil
			}

			if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			lock := flock.New(filepath.Join(cfg.Paths.OutputDir, ".seqfetch.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire output lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another seqfetch download is already using %s", cfg.Paths.OutputDir)
			}
			defer func() { _ = lock.Unlock() }()

			tk, err := newToolkitClient(cfg, logger)
			if err != nil {
				return err
			}
			dl, err := downloader.New(downloader.Config{
				OutputDir: cfg.Paths.OutputDir,
				Workers:   cfg.Download.Workers,
				KeepSRA:   cfg.Download.KeepSRA,
			}, tk, logger)
			if err != nil {
				return err
			}

			sessionID := uuid.NewString()
			started := time.Now().UTC()
			results := dl.Download(services.WithSessionID(runCtx, sessionID), runs, splitFiles)
			finished := time.Now().UTC()

			recordSession(cfg, logger, history.Session{
				ID:         sessionID,
				Series:     series,
				StartedAt:  started,
				FinishedAt: finished,
				Workers:    cfg.Download.Workers,
				Split:      splitFiles,
			}, results)

			fmt.Fprintln(out, renderOutcomes(results))

			failed := countFailures(results)
			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(results))
			}
			if len(results) < len(runs) {
				return fmt.Errorf("interrupted: %d of %d downloads completed", len(results), len(runs))
			}
			fmt.Fprintf(out, "Downloaded %d runs to %s\n", len(results), cfg.Paths.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&seriesFlag, "gse", "", "GEO series accession to resolve (e.g. GSE12345)")
	cmd.Flags().StringVar(&runsFlag, "runs", "", "Comma separated run accessions (e.g. SRR1,SRR2)")
	cmd.Flags().StringVar(&listFlag, "list", "", "Path to a .txt/.csv/.tsv file of run accessions")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory for decoded FASTQ files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size (1-16)")
	cmd.Flags().BoolVar(&split, "split", true, "Split paired-end reads into _1/_2 files")

	return cmd
}

// recordSession persists the session outcome. History failures are logged and
// never fail the download itself.
func recordSession(cfg *config.Config, logger *slog.Logger, session history.Session, results map[accession.Run]bool) {
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.RecordSession(context.Background(), session, results); err != nil {
		logger.Warn("record session failed", logging.Error(err))
	}
}
