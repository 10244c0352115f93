package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"StockScreener/internal/collector"
	"StockScreener/internal/model"
)

const seriesKeyPrefix = "series:"

// SeriesCache implements collector.SeriesCache with JSON values under
// "series:{symbol}|{period}|{interval}". Expiry is delegated to Redis.
type SeriesCache struct {
	rdb store
}

// store is the subset of *redis.Client the cache needs.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewSeriesCache creates a SeriesCache backed by the given Client.
func NewSeriesCache(c *Client) *SeriesCache {
	return &SeriesCache{rdb: c.rdb}
}

func (sc *SeriesCache) Get(ctx context.Context, key string) (*model.PriceSeries, bool, error) {
	data, err := sc.rdb.Get(ctx, seriesKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get series %s: %w", key, err)
	}
	var series model.PriceSeries
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, false, fmt.Errorf("redis: decode series %s: %w", key, err)
	}
	return &series, true, nil
}

func (sc *SeriesCache) Set(ctx context.Context, key string, series *model.PriceSeries, ttl time.Duration) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("redis: encode series %s: %w", key, err)
	}
	if err := sc.rdb.Set(ctx, seriesKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set series %s: %w", key, err)
	}
	return nil
}

// Compile-time interface check.
var _ collector.SeriesCache = (*SeriesCache)(nil)
