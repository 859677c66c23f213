package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/collector"
	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

func seriesOf(ticker string, closes ...float64) model.PriceSeries {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: day.AddDate(0, 0, i), Close: c}
	}
	return model.PriceSeries{Ticker: ticker, Points: points}
}

func TestEvaluateOrderAndIsolation(t *testing.T) {
	fetcher := &collector.MockFetcher{
		BasePrice: 100,
		Errs:      map[string]error{"ZZZZ": errors.New("lookup failed: connection refused")},
	}
	agg := NewAggregator(fetcher, model.DefaultRules(), 300, 1, zap.NewNop())

	report := agg.Evaluate(context.Background(), []string{"AAPL", "ZZZZ", "MSFT"})
	if len(report.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(report.Records))
	}
	for i, want := range []string{"AAPL", "ZZZZ", "MSFT"} {
		if got := report.Records[i].Ticker; got != want {
			t.Errorf("Records[%d].Ticker = %q, want %q", i, got, want)
		}
	}

	bad := report.Records[1]
	if bad.Signal != model.SignalHold {
		t.Errorf("failed ticker Signal = %s, want %s", bad.Signal, model.SignalHold)
	}
	if bad.ErrorNote == "" {
		t.Error("failed ticker should carry an error note")
	}

	for _, i := range []int{0, 2} {
		rec := report.Records[i]
		if rec.ErrorNote != "" {
			t.Errorf("healthy ticker %s should not carry a note, got %q", rec.Ticker, rec.ErrorNote)
		}
		if rec.Snapshot.RSI14 == nil || rec.Snapshot.MA50 == nil || rec.Snapshot.MA200 == nil {
			t.Errorf("healthy ticker %s should have all indicators over 300 points", rec.Ticker)
		}
		// The generated series rises steadily, so RSI pins at 100 and
		// the overbought rule fires.
		if rec.Signal != model.SignalSell {
			t.Errorf("rising ticker %s Signal = %s, want %s", rec.Ticker, rec.Signal, model.SignalSell)
		}
	}
}

func TestEvaluateEmptyTickerList(t *testing.T) {
	agg := NewAggregator(&collector.MockFetcher{}, model.DefaultRules(), 300, 1, zap.NewNop())
	report := agg.Evaluate(context.Background(), nil)
	if len(report.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(report.Records))
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be set")
	}
}

func TestEvaluateEmptySeriesDegrades(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.PriceSeries{"EMPT": {Ticker: "EMPT"}},
	}
	agg := NewAggregator(fetcher, model.DefaultRules(), 300, 1, zap.NewNop())

	report := agg.Evaluate(context.Background(), []string{"EMPT"})
	rec := report.Records[0]
	if rec.Signal != model.SignalHold {
		t.Errorf("Signal = %s, want %s", rec.Signal, model.SignalHold)
	}
	if rec.ErrorNote == "" {
		t.Error("an empty series should degrade with an error note")
	}
}

func TestEvaluateShortSeriesHoldsWithoutNote(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]model.PriceSeries{"NEWCO": seriesOf("NEWCO", 10, 11, 12)},
	}
	agg := NewAggregator(fetcher, model.DefaultRules(), 300, 1, zap.NewNop())

	rec := agg.Evaluate(context.Background(), []string{"NEWCO"}).Records[0]
	if rec.ErrorNote != "" {
		t.Errorf("a short series is not a failure, got note %q", rec.ErrorNote)
	}
	if rec.Signal != model.SignalHold {
		t.Errorf("Signal = %s, want %s", rec.Signal, model.SignalHold)
	}
	if rec.Snapshot.LatestPrice != 12 {
		t.Errorf("LatestPrice = %v, want 12", rec.Snapshot.LatestPrice)
	}
	if rec.Snapshot.RSI14 != nil || rec.Snapshot.MA50 != nil || rec.Snapshot.MA200 != nil {
		t.Error("indicators should all be undefined over 3 points")
	}
}

func TestEvaluateParallelPreservesOrder(t *testing.T) {
	series := make(map[string]model.PriceSeries)
	tickers := make([]string, 12)
	for i := range tickers {
		tickers[i] = fmt.Sprintf("T%02d", i)
		series[tickers[i]] = seriesOf(tickers[i], float64(i+1))
	}
	agg := NewAggregator(&collector.MockFetcher{Series: series}, model.DefaultRules(), 300, 4, zap.NewNop())

	report := agg.Evaluate(context.Background(), tickers)
	if len(report.Records) != len(tickers) {
		t.Fatalf("len(Records) = %d, want %d", len(report.Records), len(tickers))
	}
	for i, rec := range report.Records {
		if rec.Ticker != tickers[i] {
			t.Errorf("Records[%d].Ticker = %q, want %q", i, rec.Ticker, tickers[i])
		}
		if rec.Snapshot.LatestPrice != float64(i+1) {
			t.Errorf("Records[%d].LatestPrice = %v, want %v", i, rec.Snapshot.LatestPrice, float64(i+1))
		}
	}
}
