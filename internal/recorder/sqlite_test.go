package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

func f(v float64) *float64 { return &v }

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordRunPersistsRunAndSignals(t *testing.T) {
	r := openTestRecorder(t)

	report := &model.Report{
		GeneratedAt: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
		Records: []model.ReportRecord{
			{
				Ticker:   "AAPL",
				Snapshot: model.IndicatorSnapshot{LatestPrice: 150, RSI14: f(25), MA50: f(140), MA200: f(160)},
				Signal:   model.SignalBuy,
			},
			{
				Ticker:   "NVDA",
				Snapshot: model.IndicatorSnapshot{LatestPrice: 100, RSI14: f(75)},
				Signal:   model.SignalSell,
			},
			{Ticker: "ZZZZ", Signal: model.SignalHold, ErrorNote: "ZZZZ: no data returned"},
		},
	}
	if err := r.RecordRun(report); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	var tickers, errs, buys, sells, holds int
	err := r.db.QueryRow(`SELECT ticker_count, error_count, buy_count, sell_count, hold_count FROM runs`).
		Scan(&tickers, &errs, &buys, &sells, &holds)
	if err != nil {
		t.Fatalf("query run: %v", err)
	}
	if tickers != 3 || errs != 1 || buys != 1 || sells != 1 || holds != 1 {
		t.Errorf("run counters = %d/%d/%d/%d/%d", tickers, errs, buys, sells, holds)
	}

	var signalCount int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&signalCount); err != nil {
		t.Fatalf("count signals: %v", err)
	}
	if signalCount != 3 {
		t.Fatalf("want 3 signal rows, got %d", signalCount)
	}
}

func TestRecordRunStoresNullForUndefined(t *testing.T) {
	r := openTestRecorder(t)

	report := &model.Report{
		GeneratedAt: time.Now(),
		Records: []model.ReportRecord{
			{
				Ticker:   "NVDA",
				Snapshot: model.IndicatorSnapshot{LatestPrice: 100, RSI14: f(75)},
				Signal:   model.SignalSell,
			},
			{Ticker: "ZZZZ", Signal: model.SignalHold, ErrorNote: "ZZZZ: no data returned"},
		},
	}
	if err := r.RecordRun(report); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	var rsiNull, ma50Null bool
	err := r.db.QueryRow(`SELECT rsi14 IS NULL, ma50 IS NULL FROM signals WHERE ticker = 'NVDA'`).
		Scan(&rsiNull, &ma50Null)
	if err != nil {
		t.Fatalf("query NVDA: %v", err)
	}
	if rsiNull || !ma50Null {
		t.Errorf("NVDA rsi14 null=%v ma50 null=%v, want false/true", rsiNull, ma50Null)
	}

	var priceNull bool
	var note string
	err = r.db.QueryRow(`SELECT latest_price IS NULL, error_note FROM signals WHERE ticker = 'ZZZZ'`).
		Scan(&priceNull, &note)
	if err != nil {
		t.Fatalf("query ZZZZ: %v", err)
	}
	if !priceNull {
		t.Error("degraded record should store NULL price")
	}
	if note != "ZZZZ: no data returned" {
		t.Errorf("error_note = %q", note)
	}
}

func TestRecordRunAppendsAcrossRuns(t *testing.T) {
	r := openTestRecorder(t)

	report := &model.Report{
		GeneratedAt: time.Now(),
		Records: []model.ReportRecord{
			{Ticker: "AAPL", Snapshot: model.IndicatorSnapshot{LatestPrice: 1}, Signal: model.SignalHold},
		},
	}
	if err := r.RecordRun(report); err != nil {
		t.Fatalf("first RecordRun: %v", err)
	}
	if err := r.RecordRun(report); err != nil {
		t.Fatalf("second RecordRun: %v", err)
	}

	var runs, distinctRunIDs int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(DISTINCT run_id) FROM signals`).Scan(&distinctRunIDs); err != nil {
		t.Fatalf("count run ids: %v", err)
	}
	if runs != 2 || distinctRunIDs != 2 {
		t.Errorf("runs=%d distinct run_ids=%d, want 2/2", runs, distinctRunIDs)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r1, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	r1.Close()

	r2, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	r2.Close()
}
