package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"seqfetch/internal/accession"
	"seqfetch/internal/history"
	"seqfetch/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded download sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.ListSessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No download sessions recorded")
				return nil
			}

			rows := make([]sessionRow, 0, len(sessions))
			for _, session := range sessions {
				series := session.Series
				if series == "" {
					series = "-"
				}
				rows = append(rows, sessionRow{
					ID:        session.ID,
					Series:    series,
					Started:   session.StartedAt.Local().Format(time.RFC3339),
					Total:     session.Total,
					Succeeded: session.Succeeded,
					Failed:    session.Failed,
				})
			}
			fmt.Fprintln(out, sessionTable(rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum sessions to list (0 for all)")
	cmd.AddCommand(newHistoryRunsCommand(ctx))
	cmd.AddCommand(newHistoryLastCommand(ctx))

	return cmd
}

func newHistoryRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs <session-id>",
		Short: "Show per-run outcomes for a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.SessionRuns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No runs recorded for session %s\n", args[0])
				return nil
			}

			rows := make([][2]string, 0, len(records))
			for _, record := range records {
				outcome := "failed"
				if record.Succeeded {
					outcome = "ok"
				}
				rows = append(rows, [2]string{record.Run, outcome})
			}
			fmt.Fprintln(out, runTable("Outcome", rows))
			return nil
		},
	}
}

func newHistoryLastCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "last <run accession>",
		Short: "Show the most recent recorded outcome for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			run, err := accession.ParseRun(args[0])
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.LastOutcome(cmd.Context(), run)
			if err != nil {
				return err
			}
			if record == nil {
				return services.Wrap(services.ErrNotFound, "history", "last",
					fmt.Sprintf("no recorded outcome for %s", run), nil)
			}
			outcome := "failed"
			if record.Succeeded {
				outcome = "ok"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (session %s)\n", run, outcome, record.SessionID)
			return nil
		},
	}
}
