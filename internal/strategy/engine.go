package strategy

import "github.com/chumbawanba/Stock-agent-ai/internal/model"

// Classify applies the threshold rules to one indicator snapshot and
// returns exactly one signal. Rules are checked in order, first match
// wins:
//
//  1. RSI below the oversold bound AND price above the short MA → Buy.
//  2. RSI above the overbought bound, OR price below the long MA → Sell.
//  3. Otherwise → Hold.
//
// The Buy rule requires both conditions while the Sell rule takes either;
// that asymmetry is deliberate and must not be symmetrized. A rule whose
// inputs are undefined is not satisfied, so a snapshot with no defined
// indicators classifies as Hold. Classify never fails.
func Classify(snap model.IndicatorSnapshot, rules model.Rules) model.Signal {
	if snap.RSI14 != nil && *snap.RSI14 < rules.RSIOversold &&
		snap.MA50 != nil && snap.LatestPrice > *snap.MA50 {
		return model.SignalBuy
	}
	if (snap.RSI14 != nil && *snap.RSI14 > rules.RSIOverbought) ||
		(snap.MA200 != nil && snap.LatestPrice < *snap.MA200) {
		return model.SignalSell
	}
	return model.SignalHold
}
