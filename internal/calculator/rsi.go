package calculator

// CalculateRSI computes the Wilder-smoothed RSI over the given period.
// Requires at least period+1 closes; ok is false when the series is too
// short (or the period is not positive) and the indicator is undefined.
func CalculateRSI(closes []float64, period int) (rsi float64, ok bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder smoothing for the remaining changes
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0, true
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}
