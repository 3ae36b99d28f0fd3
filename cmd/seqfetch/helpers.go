package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"seqfetch/internal/accession"
	"seqfetch/internal/config"
	"seqfetch/internal/resolver"
	"seqfetch/internal/toolkit"
)

// downloadInput collects the mutually-additive run sources a command accepts.
type downloadInput struct {
	Series string
	Runs   string
	List   string
}

func (in downloadInput) empty() bool {
	return strings.TrimSpace(in.Series) == "" &&
		strings.TrimSpace(in.Runs) == "" &&
		strings.TrimSpace(in.List) == ""
}

func newResolver(cfg *config.Config, logger *slog.Logger) (*resolver.Client, error) {
	return resolver.New(resolver.Options{
		BaseURL:      cfg.Resolver.BaseURL,
		RequestDelay: time.Duration(cfg.Resolver.RequestDelayMS) * time.Millisecond,
		MaxAttempts:  cfg.Resolver.MaxAttempts,
		Timeout:      time.Duration(cfg.Resolver.TimeoutSeconds) * time.Second,
		Logger:       logger,
	})
}

func newToolkitClient(cfg *config.Config, logger *slog.Logger) (*toolkit.Client, error) {
	policy := toolkit.RetryPolicy{
		MaxAttempts: cfg.Download.MaxAttempts,
		Delay:       time.Duration(cfg.Download.RetryDelaySeconds) * time.Second,
		Timeout:     time.Duration(cfg.Download.TimeoutSeconds) * time.Second,
	}
	return toolkit.New(cfg.Paths.ToolkitDir, policy, logger)
}

// gatherRuns assembles the deduplicated run set from every provided source.
// The returned series string is non-empty when a GEO series contributed runs.
func gatherRuns(ctx context.Context, cfg *config.Config, logger *slog.Logger, in downloadInput) ([]accession.Run, string, error) {
	var runs []accession.Run
	series := ""

	if value := strings.TrimSpace(in.Runs); value != "" {
		parsed, err := accession.ParseRunList(value)
		if err != nil {
			return nil, "", err
		}
		runs = append(runs, parsed...)
	}

	if path := strings.TrimSpace(in.List); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return nil, "", err
		}
		parsed, err := accession.ReadListFile(expanded)
		if err != nil {
			return nil, "", err
		}
		runs = append(runs, parsed...)
	}

	if value := strings.TrimSpace(in.Series); value != "" {
		parsed, err := accession.ParseSeries(value)
		if err != nil {
			return nil, "", err
		}
		client, err := newResolver(cfg, logger)
		if err != nil {
			return nil, "", err
		}
		resolved, err := client.Resolve(ctx, parsed)
		if err != nil {
			return nil, "", fmt.Errorf("resolve %s: %w", parsed, err)
		}
		series = string(parsed)
		runs = append(runs, resolved...)
	}

	return accession.Dedupe(runs), series, nil
}

func countFailures(results map[accession.Run]bool) int {
	failed := 0
	for _, ok := range results {
		if !ok {
			failed++
		}
	}
	return failed
}
