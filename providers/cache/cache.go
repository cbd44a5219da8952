// Package cache provides the forecast cache backends and the typed wrapper
// the forecast provider proxy uses
package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"tripplanner.app/models"
)

// GenericCacheInterface defines generic cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// ForecastCacheInterface defines forecast-specific cache operations
type ForecastCacheInterface interface {
	Get(key string) ([]models.ForecastDay, bool)
	Set(key string, days []models.ForecastDay, ttl time.Duration)
	Delete(key string)
	Clear()
}

// MemoryCache is an in-process cache backend
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-process cache with background expiry sweeps
func NewMemoryCache() GenericCacheInterface {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, 5*time.Minute),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}
	c.store.Set(key, value, ttl)
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.store.Flush()
}

// ForecastCache wraps a generic cache with forecast-typed operations
type ForecastCache struct {
	cache GenericCacheInterface
}

func NewForecastCache(cache GenericCacheInterface) ForecastCacheInterface {
	return &ForecastCache{
		cache: cache,
	}
}

func (f *ForecastCache) Get(key string) ([]models.ForecastDay, bool) {
	data, found := f.cache.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var days []models.ForecastDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, false
	}

	return days, true
}

func (f *ForecastCache) Set(key string, days []models.ForecastDay, ttl time.Duration) {
	if len(days) == 0 {
		return
	}

	data, err := json.Marshal(days)
	if err != nil {
		return
	}

	f.cache.Set(context.Background(), key, data, ttl)
}

func (f *ForecastCache) Delete(key string) {
	f.cache.Delete(context.Background(), key)
}

func (f *ForecastCache) Clear() {
	f.cache.Clear(context.Background())
}
