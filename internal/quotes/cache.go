package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/quotepulse/internal/logger"
)

const cacheKeyPrefix = "quotepulse:closes"

// CachedSource is a Redis read-through cache in front of another Source.
//
// Behavior:
//   - Hits are decoded from a JSON array stored under a per ticker/range key.
//   - Misses go to the inner source; non-empty results are stored with TTL.
//   - Redis failures are logged and bypassed, never returned to the caller.
type CachedSource struct {
	inner Source
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedSource) Name() string { return c.inner.Name() + "+redis" }

func cacheKey(ticker string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s", cacheKeyPrefix, ticker, from.Format(time.DateOnly), to.Format(time.DateOnly))
}

func (c *CachedSource) ClosingPrices(ctx context.Context, ticker string, from, to time.Time) ([]float64, error) {
	key := cacheKey(ticker, from, to)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var closes []float64
		if jerr := json.Unmarshal(raw, &closes); jerr == nil {
			logger.L().Debug().Str("ticker", ticker).Str("key", key).Msg("quote cache hit")
			return closes, nil
		}
		logger.L().Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		logger.L().Warn().Err(err).Str("key", key).Msg("quote cache read failed")
	}

	closes, err := c.inner.ClosingPrices(ctx, ticker, from, to)
	if err != nil {
		return nil, err
	}
	if len(closes) == 0 {
		return closes, nil
	}

	data, err := json.Marshal(closes)
	if err != nil {
		return closes, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.L().Warn().Err(err).Str("key", key).Msg("quote cache write failed")
	}
	return closes, nil
}
