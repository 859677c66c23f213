package collector

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// ErrNoData reports that a provider returned no usable price data.
var ErrNoData = errors.New("no price data returned")

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	// FetchDailySeries returns up to lookbackDays daily closes for the
	// ticker, ascending by date with no duplicate dates.
	FetchDailySeries(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error)
	Name() string
}

// toSeries sorts points ascending by date, drops duplicate dates (the
// later value wins) and trims to the most recent lookbackDays points.
func toSeries(ticker string, points []model.PricePoint, lookbackDays int) model.PriceSeries {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}
	if len(deduped) > lookbackDays {
		deduped = deduped[len(deduped)-lookbackDays:]
	}

	return model.PriceSeries{
		Ticker:    ticker,
		Points:    deduped,
		FetchedAt: time.Now(),
	}
}
