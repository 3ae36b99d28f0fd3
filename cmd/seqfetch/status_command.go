package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"seqfetch/internal/accession"
	"seqfetch/internal/config"
	"seqfetch/internal/downloader"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var (
		runsFlag   string
		listFlag   string
		outputFlag string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the on-disk state of run downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

			var runs []accession.Run
			if runsFlag != "" {
				parsed, err := accession.ParseRunList(runsFlag)
				if err != nil {
					return err
				}
				runs = append(runs, parsed...)
			}
			if listFlag != "" {
				expanded, err := config.ExpandPath(listFlag)
				if err != nil {
					return err
				}
				parsed, err := accession.ReadListFile(expanded)
				if err != nil {
					return err
				}
				runs = append(runs, parsed...)
			}
			for _, arg := range args {
				run, err := accession.ParseRun(arg)
				if err != nil {
					return err
				}
				runs = append(runs, run)
			}
			if len(runs) == 0 {
				return fmt.Errorf("no runs specified; use positional accessions, --runs, or --list")
			}

			states := downloader.InspectStatus(cfg.Paths.OutputDir, runs)
			fmt.Fprintln(cmd.OutOrStdout(), renderStatuses(states))
			return nil
		},
	}

	cmd.Flags().StringVar(&runsFlag, "runs", "", "Comma separated run accessions")
	cmd.Flags().StringVar(&listFlag, "list", "", "Path to a .txt/.csv/.tsv file of run accessions")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory to inspect")

	return cmd
}

func renderStatuses(states map[accession.Run]downloader.Status) string {
	runs := make([]accession.Run, 0, len(states))
	for run := range states {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i] < runs[j] })

	rows := make([][2]string, 0, len(runs))
	counts := map[downloader.Status]int{}
	for _, run := range runs {
		rows = append(rows, [2]string{string(run), string(states[run])})
		counts[states[run]]++
	}

	summary := fmt.Sprintf("%d downloaded, %d partial, %d missing",
		counts[downloader.StatusDownloaded],
		counts[downloader.StatusPartial],
		counts[downloader.StatusMissing])
	return runTable("Status", rows) + "\n" + summary
}
