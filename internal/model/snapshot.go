package model

// IndicatorSnapshot holds the most recent session's derived indicator
// values for one ticker. A nil field means the series was too short to
// compute that indicator.
type IndicatorSnapshot struct {
	LatestPrice float64
	RSI14       *float64
	MA50        *float64
	MA200       *float64
}
