package providers

import (
	"context"
	"log/slog"
	"time"

	"tripplanner.app/metrics"
	"tripplanner.app/providers/cache"
)

// InstrumentedCache decorates a cache backend with hit/miss metrics
type InstrumentedCache struct {
	cache   cache.GenericCacheInterface
	metrics *metrics.CacheMetrics
}

func NewInstrumentedCache(backend cache.GenericCacheInterface, cacheType string) *InstrumentedCache {
	return &InstrumentedCache{
		cache:   backend,
		metrics: metrics.NewCacheMetrics(cacheType),
	}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, found := c.cache.Get(ctx, key)

	if found {
		c.metrics.RecordHit()
		slog.Debug("forecast cache hit", "key", key)
	} else {
		c.metrics.RecordMiss()
		slog.Debug("forecast cache miss", "key", key)
	}

	return data, found
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.cache.Set(ctx, key, value, ttl)
}

func (c *InstrumentedCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(ctx, key)
}

func (c *InstrumentedCache) Clear(ctx context.Context) {
	c.cache.Clear(ctx)
}

// GetStats exposes the accumulated counters for diagnostics
func (c *InstrumentedCache) GetStats() map[string]interface{} {
	return c.metrics.GetStats()
}
