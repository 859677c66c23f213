// Package report turns an ordered ticker list into an evaluation report.
package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/calculator"
	"github.com/chumbawanba/Stock-agent-ai/internal/collector"
	"github.com/chumbawanba/Stock-agent-ai/internal/model"
	"github.com/chumbawanba/Stock-agent-ai/internal/strategy"
)

// Aggregator evaluates tickers one by one against the rule set.
type Aggregator struct {
	fetcher      collector.Fetcher
	rules        model.Rules
	lookbackDays int
	workers      int
	logger       *zap.Logger
}

// NewAggregator creates an Aggregator. workers caps concurrent fetches;
// 1 means strictly sequential evaluation.
func NewAggregator(fetcher collector.Fetcher, rules model.Rules, lookbackDays, workers int, logger *zap.Logger) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		fetcher:      fetcher,
		rules:        rules,
		lookbackDays: lookbackDays,
		workers:      workers,
		logger:       logger,
	}
}

// Evaluate produces one record per ticker, in the order given. A failed
// ticker degrades to a Hold record with an error note; the run itself
// never fails, and an empty ticker list yields an empty report.
func (a *Aggregator) Evaluate(ctx context.Context, tickers []string) model.Report {
	report := model.Report{
		GeneratedAt: time.Now(),
		Records:     make([]model.ReportRecord, len(tickers)),
	}
	if len(tickers) == 0 {
		return report
	}

	if a.workers == 1 {
		for i, ticker := range tickers {
			report.Records[i] = a.evaluateOne(ctx, ticker)
		}
		return report
	}

	// Records are written by index, so output order matches input order
	// regardless of which fetch finishes first.
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			report.Records[i] = a.evaluateOne(ctx, ticker)
		}(i, ticker)
	}
	wg.Wait()
	return report
}

func (a *Aggregator) evaluateOne(ctx context.Context, ticker string) model.ReportRecord {
	series, err := a.fetcher.FetchDailySeries(ctx, ticker, a.lookbackDays)
	if err == nil && len(series.Points) == 0 {
		err = fmt.Errorf("%s: %w", ticker, collector.ErrNoData)
	}
	if err != nil {
		a.logger.Warn("Ingestion failed", zap.String("ticker", ticker), zap.Error(err))
		return degradedRecord(ticker, err)
	}

	snap, err := calculator.Compute(series, a.rules)
	if err != nil {
		a.logger.Warn("Indicator computation failed", zap.String("ticker", ticker), zap.Error(err))
		return degradedRecord(ticker, err)
	}

	return model.ReportRecord{
		Ticker:   ticker,
		Snapshot: snap,
		Signal:   strategy.Classify(snap, a.rules),
	}
}

// degradedRecord keeps a failed ticker visible in the report instead of
// aborting the run.
func degradedRecord(ticker string, err error) model.ReportRecord {
	return model.ReportRecord{
		Ticker:    ticker,
		Signal:    model.SignalHold,
		ErrorNote: err.Error(),
	}
}
