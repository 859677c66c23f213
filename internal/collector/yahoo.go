package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public chart API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

var _ Fetcher = (*YahooFetcher)(nil)

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(ticker string) string {
	if mapped, ok := f.SymbolMap[ticker]; ok {
		return mapped
	}
	return ticker
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailySeries pulls daily closes from the chart endpoint, skipping
// null bars (holidays etc.) and non-positive closes.
func (f *YahooFetcher) FetchDailySeries(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	// Yahoo range: max "2y" for daily interval
	rng := "2y"
	if lookbackDays <= 30 {
		rng = "1mo"
	} else if lookbackDays <= 90 {
		rng = "3mo"
	} else if lookbackDays <= 180 {
		rng = "6mo"
	} else if lookbackDays <= 365 {
		rng = "1y"
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(ticker)), rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: status %d, body: %s", ticker, resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo api error for %s: %s", ticker, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c <= 0 {
			continue // skip null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: c,
		})
	}
	if len(points) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo %s: %w", ticker, ErrNoData)
	}

	return toSeries(ticker, points, lookbackDays), nil
}
