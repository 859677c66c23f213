package calculator

import "github.com/chumbawanba/Stock-agent-ai/internal/model"

// CalculateSMA computes the simple moving average of the most recent
// `window` prices. ok is false when the series is shorter than the window
// (or the window is not positive) and the indicator is undefined.
func CalculateSMA(prices []float64, window int) (ma float64, ok bool) {
	if window <= 0 || len(prices) < window {
		return 0, false
	}
	sum := 0.0
	for i := len(prices) - window; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(window), true
}

func extractCloses(points []model.PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes
}
