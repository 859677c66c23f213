package model

// Rules holds the indicator windows and signal thresholds applied during
// an evaluation run. Passed explicitly to the calculator and classifier;
// never read from globals.
type Rules struct {
	RSIPeriod     int
	RSIOversold   float64
	RSIOverbought float64
	MAShortWindow int
	MALongWindow  int
}

// DefaultRules returns the standard 14/50/200 windows with 30/70 RSI bands.
func DefaultRules() Rules {
	return Rules{
		RSIPeriod:     14,
		RSIOversold:   30,
		RSIOverbought: 70,
		MAShortWindow: 50,
		MALongWindow:  200,
	}
}
