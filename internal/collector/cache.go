package collector

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"StockScreener/internal/model"
)

// SeriesCache stores fetched series for a bounded time.
type SeriesCache interface {
	Get(ctx context.Context, key string) (*model.PriceSeries, bool, error)
	Set(ctx context.Context, key string, series *model.PriceSeries, ttl time.Duration) error
}

// CacheKey identifies a series by (symbol, period, interval).
func CacheKey(symbol, period, interval string) string {
	return symbol + "|" + period + "|" + interval
}

type memoryEntry struct {
	series    *model.PriceSeries
	expiresAt time.Time
}

// MemoryCache is a process-local SeriesCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.PriceSeries, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.series, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, series *model.PriceSeries, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{series: series, expiresAt: c.now().Add(ttl)}
	return nil
}

// CachedFetcher serves repeated requests from a SeriesCache until the TTL expires.
// Cache failures are logged and fall through to the wrapped fetcher.
type CachedFetcher struct {
	Fetcher Fetcher
	Cache   SeriesCache
	TTL     time.Duration
	Logger  *zap.SugaredLogger
}

// NewCachedFetcher wraps f with cache c.
func NewCachedFetcher(f Fetcher, c SeriesCache, ttl time.Duration, logger *zap.SugaredLogger) *CachedFetcher {
	return &CachedFetcher{Fetcher: f, Cache: c, TTL: ttl, Logger: logger}
}

func (f *CachedFetcher) Name() string { return f.Fetcher.Name() + "+cache" }

func (f *CachedFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	key := CacheKey(symbol, period, interval)
	series, ok, err := f.Cache.Get(ctx, key)
	if err != nil {
		f.Logger.Warnw("series cache read failed", "key", key, "error", err)
	} else if ok {
		return series, nil
	}

	series, err = f.Fetcher.FetchSeries(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}
	if err := f.Cache.Set(ctx, key, series, f.TTL); err != nil {
		f.Logger.Warnw("series cache write failed", "key", key, "error", err)
	}
	return series, nil
}
