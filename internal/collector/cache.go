package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

const seriesKeyPrefix = "series:"

// CachedFetcher wraps a Fetcher with a Redis-backed cache. Keys carry the
// UTC date, so a run never reuses series fetched for a previous session;
// cache failures degrade to a direct fetch and never fail the ticker.
type CachedFetcher struct {
	inner  Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ Fetcher = (*CachedFetcher)(nil)

// NewCachedFetcher creates a caching decorator around inner.
func NewCachedFetcher(inner Fetcher, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedFetcher {
	return &CachedFetcher{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedFetcher) Name() string { return c.inner.Name() + "+cache" }

func (c *CachedFetcher) FetchDailySeries(ctx context.Context, ticker string, lookbackDays int) (model.PriceSeries, error) {
	key := fmt.Sprintf("%s%s:%d:%s", seriesKeyPrefix, ticker, lookbackDays, time.Now().UTC().Format("2006-01-02"))

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var series model.PriceSeries
		if err := json.Unmarshal(data, &series); err == nil {
			c.logger.Debug("Series cache hit", zap.String("ticker", ticker))
			return series, nil
		}
		c.logger.Warn("Discarding corrupt cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Series cache read failed", zap.String("ticker", ticker), zap.Error(err))
	}

	series, err := c.inner.FetchDailySeries(ctx, ticker, lookbackDays)
	if err != nil {
		return model.PriceSeries{}, err
	}

	if payload, err := json.Marshal(series); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("Series cache write failed", zap.String("ticker", ticker), zap.Error(err))
		}
	}
	return series, nil
}
