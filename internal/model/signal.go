package model

import "time"

// Signal is the classification decision for one ticker.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// ReportRecord is the evaluation outcome for one ticker in one run.
// ErrorNote is non-empty when ingestion or computation failed and the
// record was degraded to a Hold.
type ReportRecord struct {
	Ticker    string
	Snapshot  IndicatorSnapshot
	Signal    Signal
	ErrorNote string
}

// Report is the ordered collection of per-ticker records produced by a
// single evaluation run. Record order matches the ticker input order.
type Report struct {
	GeneratedAt time.Time
	Records     []ReportRecord
}

// Actionable returns the records whose signal is Buy or Sell, in report order.
func (r *Report) Actionable() []ReportRecord {
	var out []ReportRecord
	for _, rec := range r.Records {
		if rec.Signal == SignalBuy || rec.Signal == SignalSell {
			out = append(out, rec)
		}
	}
	return out
}
