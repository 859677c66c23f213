package collector

import (
	"context"
	"time"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Canned series and per-ticker errors take precedence over generated data.
type MockFetcher struct {
	Series    map[string]model.PriceSeries
	Errs      map[string]error
	Err       error
	BasePrice float64
}

var _ Fetcher = (*MockFetcher)(nil)

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(_ context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	if err, ok := m.Errs[ticker]; ok {
		return model.PriceSeries{}, err
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	return generateMockSeries(ticker, m.BasePrice, lookbackDays), nil
}

func generateMockSeries(ticker string, basePrice float64, count int) model.PriceSeries {
	if basePrice == 0 {
		basePrice = 100
	}
	start := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  start.AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return model.PriceSeries{Ticker: ticker, Points: points, FetchedAt: time.Now()}
}
