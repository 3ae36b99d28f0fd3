package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// runTable renders the two-column run listing shared by download summaries,
// status reports, and per-session history. The second header names what is
// being reported for each run (Outcome, Status).
func runTable(header string, rows [][2]string) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Run", header})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

// sessionRow is one line of the history listing.
type sessionRow struct {
	ID        string
	Series    string
	Started   string
	Total     int
	Succeeded int
	Failed    int
}

// sessionTable renders recorded sessions, tally columns right-aligned.
func sessionTable(rows []sessionRow) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"Session", "Series", "Started", "Total", "OK", "Failed"})
	for _, row := range rows {
		tw.AppendRow(table.Row{
			row.ID,
			row.Series,
			row.Started,
			strconv.Itoa(row.Total),
			strconv.Itoa(row.Succeeded),
			strconv.Itoa(row.Failed),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	return tw
}
