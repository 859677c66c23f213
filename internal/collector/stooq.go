package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq daily CSV download API.
type StooqFetcher struct {
	BaseURL string
	Client  *http.Client
	Suffix  string // appended to lower-cased tickers, ".us" by default
}

var _ Fetcher = (*StooqFetcher)(nil)

// NewStooqFetcher creates a new Stooq fetcher with optional proxy support.
func NewStooqFetcher(proxyURL string, timeout time.Duration) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		BaseURL: "https://stooq.com",
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Suffix: ".us",
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

func (f *StooqFetcher) stooqSymbol(ticker string) string {
	s := strings.ToLower(ticker)
	if f.Suffix != "" && !strings.Contains(s, ".") {
		s += f.Suffix
	}
	return s
}

// FetchDailySeries downloads daily CSV history. The calendar window is
// padded to twice the lookback so weekends and holidays still leave
// enough trading sessions before trimming.
func (f *StooqFetcher) FetchDailySeries(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -lookbackDays*2)
	u := fmt.Sprintf("%s/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		f.BaseURL, url.QueryEscape(f.stooqSymbol(ticker)),
		from.Format("20060102"), now.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("stooq fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("stooq %s: status %d", ticker, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("stooq parse csv: %w", err)
	}

	// Rows are Date,Open,High,Low,Close,Volume with a header line.
	points := make([]model.PricePoint, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 5 {
			continue
		}
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			continue
		}
		c, err := strconv.ParseFloat(rec[4], 64)
		if err != nil || c <= 0 {
			continue
		}
		points = append(points, model.PricePoint{Date: date, Close: c})
	}
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("stooq %s: %w", ticker, ErrNoData)
	}

	return toSeries(ticker, points, lookbackDays), nil
}
