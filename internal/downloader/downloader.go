package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"seqfetch/internal/accession"
	"seqfetch/internal/logging"
	"seqfetch/internal/services"
)

// Toolkit is the subset of toolkit behavior the orchestrator drives.
type Toolkit interface {
	Fetch(ctx context.Context, run accession.Run, outDir string) error
	Decode(ctx context.Context, run accession.Run, outDir string, split bool) error
}

// Config holds the immutable settings for one download session.
type Config struct {
	OutputDir string
	Workers   int
	// KeepSRA skips the cleanup step so the intermediate archive survives.
	KeepSRA bool
}

// Downloader orchestrates per-run fetch/decode pipelines across a bounded
// worker pool.
type Downloader struct {
	cfg    Config
	tk     Toolkit
	logger *slog.Logger
}

// New validates the configuration and prepares the output directory.
func New(cfg Config, tk Toolkit, logger *slog.Logger) (*Downloader, error) {
	if cfg.OutputDir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "downloader", "new", "output directory required", nil)
	}
	if cfg.Workers < 1 || cfg.Workers > 16 {
		return nil, services.Wrap(services.ErrValidation, "downloader", "new",
			fmt.Sprintf("workers must be between 1 and 16, got %d", cfg.Workers), nil)
	}
	if tk == nil {
		return nil, services.Wrap(services.ErrConfiguration, "downloader", "new", "toolkit required", nil)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "downloader", "new", "create output directory", err)
	}
	return &Downloader{
		cfg:    cfg,
		tk:     tk,
		logger: logging.NewComponentLogger(logger, "downloader"),
	}, nil
}

type outcome struct {
	run accession.Run
	ok  bool
	// interrupted marks a pipeline cut short by caller cancellation before
	// it could genuinely succeed or fail; such runs get no map entry.
	interrupted bool
}

// Download processes the given runs and returns one boolean outcome per
// distinct run. Individual failures are recorded, never raised. Cancelling
// the context stops submission of new work; in-flight pipelines finish their
// current attempt and their results are included, while pipelines stopped by
// the cancellation itself are omitted rather than counted as failures.
func (d *Downloader) Download(ctx context.Context, runs []accession.Run, split bool) map[accession.Run]bool {
	results := make(map[accession.Run]bool)
	unique := accession.Dedupe(runs)
	if len(unique) == 0 {
		d.logger.Warn("no runs to download")
		return results
	}

	d.logger.Info("starting downloads",
		logging.Int("runs", len(unique)),
		logging.Int("workers", d.cfg.Workers),
		logging.Bool("split", split))

	jobs := make(chan accession.Run)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < d.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for run := range jobs {
				ok, interrupted := d.process(ctx, run, split)
				outcomes <- outcome{run: run, ok: ok, interrupted: interrupted}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, run := range unique {
			select {
			case jobs <- run:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for oc := range outcomes {
		// One line per completed run so interleaved worker output stays whole.
		switch {
		case oc.interrupted:
			d.logger.Warn("download interrupted", logging.String(logging.FieldRun, string(oc.run)))
		case oc.ok:
			results[oc.run] = true
			d.logger.Info("download succeeded", logging.String(logging.FieldRun, string(oc.run)))
		default:
			results[oc.run] = false
			d.logger.Error("download failed", logging.String(logging.FieldRun, string(oc.run)))
		}
	}

	if err := ctx.Err(); err != nil && len(results) < len(unique) {
		d.logger.Warn("download interrupted, returning partial results",
			logging.Int("completed", len(results)),
			logging.Int("submitted", len(unique)))
	}
	return results
}

// process runs the three-step pipeline for one accession. All errors are
// absorbed here; a panic or filesystem surprise marks the run failed without
// touching sibling pipelines. A step stopped by caller cancellation reports
// interrupted instead of a failure.
func (d *Downloader) process(ctx context.Context, run accession.Run, split bool) (ok, interrupted bool) {
	runCtx := services.WithRun(ctx, string(run))
	logger := logging.WithContext(runCtx, d.logger)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic", logging.Any("panic", r))
			ok, interrupted = false, false
		}
	}()

	if err := d.tk.Fetch(services.WithStep(runCtx, "fetch"), run, d.cfg.OutputDir); err != nil {
		if cutShort(ctx, err) {
			logger.Warn("fetch interrupted", logging.Error(err))
			return false, true
		}
		logger.Warn("fetch failed", logging.Error(err))
		return false, false
	}
	if err := d.tk.Decode(services.WithStep(runCtx, "decode"), run, d.cfg.OutputDir, split); err != nil {
		if cutShort(ctx, err) {
			logger.Warn("decode interrupted", logging.Error(err))
			return false, true
		}
		logger.Warn("decode failed", logging.Error(err))
		return false, false
	}
	if !d.cfg.KeepSRA {
		d.cleanup(run, logger)
	}
	return true, false
}

// cutShort distinguishes a step that failed on its own from one the caller's
// cancellation stopped mid-retry.
func cutShort(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, context.Canceled)
}

// cleanup removes the intermediate .sra artifact and its directory when empty.
// Best-effort: failures are logged at debug and never affect the outcome.
func (d *Downloader) cleanup(run accession.Run, logger *slog.Logger) {
	dir := filepath.Join(d.cfg.OutputDir, string(run))
	artifact := filepath.Join(dir, string(run)+".sra")
	if err := os.Remove(artifact); err != nil && !os.IsNotExist(err) {
		logger.Debug("cleanup could not remove archive", logging.Error(err))
	}
	// Remove succeeds only on an empty directory; other files may coexist.
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		logger.Debug("cleanup left directory in place", logging.Error(err))
	}
}
