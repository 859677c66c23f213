package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// csvHeader is part of the report contract; column order is fixed.
var csvHeader = []string{"ticker", "latestPrice", "rsi14", "ma50", "ma200", "signal"}

// WriteCSV renders the report as CSV in record order. Undefined
// indicators and the price of a degraded record render as empty cells.
func WriteCSV(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range report.Records {
		price := ""
		if rec.ErrorNote == "" {
			price = fmt.Sprintf("%.2f", rec.Snapshot.LatestPrice)
		}
		row := []string{
			rec.Ticker,
			price,
			formatOptional(rec.Snapshot.RSI14),
			formatOptional(rec.Snapshot.MA50),
			formatOptional(rec.Snapshot.MA200),
			string(rec.Signal),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the report to path, creating parent directories.
func SaveCSV(path string, report *model.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer out.Close()
	return WriteCSV(out, report)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
