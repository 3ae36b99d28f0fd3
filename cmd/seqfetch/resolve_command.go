package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"seqfetch/internal/accession"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <GSE accession>",
		Short: "Resolve a GEO series to its SRA run accessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			series, err := accession.ParseSeries(args[0])
			if err != nil {
				return err
			}
			client, err := newResolver(cfg, logger)
			if err != nil {
				return err
			}

			runs, err := client.Resolve(cmd.Context(), series)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintf(out, "No runs found for %s\n", series)
				return nil
			}
			fmt.Fprintln(out, strings.Join(accession.Strings(runs), "\n"))
			fmt.Fprintf(cmd.ErrOrStderr(), "%d runs\n", len(runs))
			return nil
		},
	}
}
