package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// WriteTable renders the report as an aligned text table for the console.
func WriteTable(w io.Writer, report *model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tPRICE\tRSI14\tMA50\tMA200\tSIGNAL\tNOTE")
	for _, rec := range report.Records {
		price := "-"
		if rec.ErrorNote == "" {
			price = fmt.Sprintf("%.2f", rec.Snapshot.LatestPrice)
		}
		note := rec.ErrorNote
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Ticker,
			price,
			formatOptionalDash(rec.Snapshot.RSI14),
			formatOptionalDash(rec.Snapshot.MA50),
			formatOptionalDash(rec.Snapshot.MA200),
			rec.Signal,
			note,
		)
	}
	return tw.Flush()
}

func formatOptionalDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
