package model

import "time"

// PricePoint is one trading session's closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the daily closing history for one ticker,
// ascending by date with no duplicate dates. It is never mutated
// after ingestion.
type PriceSeries struct {
	Ticker    string
	Points    []PricePoint
	FetchedAt time.Time
}
