package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// ErrInsufficientData reports a series too short to evaluate at all.
var ErrInsufficientData = errors.New("insufficient price data")

// ErrComputation reports a non-finite value produced while deriving indicators.
var ErrComputation = errors.New("indicator computation failed")

// Compute derives the most recent session's indicator snapshot from a
// price series. An empty series is an error; an indicator whose window
// exceeds the series length is left nil rather than failing the ticker.
func Compute(series model.PriceSeries, rules model.Rules) (model.IndicatorSnapshot, error) {
	n := len(series.Points)
	if n == 0 {
		return model.IndicatorSnapshot{}, fmt.Errorf("%w: empty series for %s", ErrInsufficientData, series.Ticker)
	}

	closes := extractCloses(series.Points)
	snap := model.IndicatorSnapshot{LatestPrice: closes[n-1]}

	if rsi, ok := CalculateRSI(closes, rules.RSIPeriod); ok {
		snap.RSI14 = &rsi
	}
	if ma, ok := CalculateSMA(closes, rules.MAShortWindow); ok {
		snap.MA50 = &ma
	}
	if ma, ok := CalculateSMA(closes, rules.MALongWindow); ok {
		snap.MA200 = &ma
	}

	if err := checkFinite(snap); err != nil {
		return model.IndicatorSnapshot{}, fmt.Errorf("%s: %w", series.Ticker, err)
	}
	return snap, nil
}

// checkFinite rejects NaN and Inf so they never reach a report record.
func checkFinite(snap model.IndicatorSnapshot) error {
	for _, v := range []*float64{&snap.LatestPrice, snap.RSI14, snap.MA50, snap.MA200} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return fmt.Errorf("%w: non-finite indicator value", ErrComputation)
		}
	}
	return nil
}
