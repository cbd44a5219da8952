package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripplanner.app/config"
	"tripplanner.app/models"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, found := c.Get(ctx, "missing")
	assert.False(t, found)

	c.Set(ctx, "key", []byte("value"), time.Minute)
	got, found := c.Get(ctx, "key")
	assert.True(t, found)
	assert.Equal(t, []byte("value"), got)

	c.Delete(ctx, "key")
	_, found = c.Get(ctx, "key")
	assert.False(t, found)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)
	c.Clear(ctx)

	_, found := c.Get(ctx, "a")
	assert.False(t, found)
	_, found = c.Get(ctx, "b")
	assert.False(t, found)
}

func TestRedisCache_SetGet(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(&RedisCacheConfig{
		Addr:         mr.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)

	ctx := context.Background()
	c.Set(ctx, "key", []byte("value"), time.Minute)

	got, found := c.Get(ctx, "key")
	assert.True(t, found)
	assert.Equal(t, []byte("value"), got)

	// Expiry is honored
	mr.FastForward(2 * time.Minute)
	_, found = c.Get(ctx, "key")
	assert.False(t, found)
}

func TestRedisCache_ConnectionFailure(t *testing.T) {
	_, err := NewRedisCache(&RedisCacheConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}

func TestForecastCache_RoundTrip(t *testing.T) {
	fc := NewForecastCache(NewMemoryCache())

	days := []models.ForecastDay{
		{Date: models.NewDate(2025, 7, 1), TempMax: 24, Summary: "Clear"},
		{Date: models.NewDate(2025, 7, 2), TempMax: 20, PrecipProbability: 80, Summary: "Rainy"},
	}
	fc.Set("forecast:1:2", days, time.Minute)

	got, found := fc.Get("forecast:1:2")
	require.True(t, found)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-07-01", got[0].Date.String())
	assert.Equal(t, "Rainy", got[1].Summary)
}

func TestForecastCache_EmptySliceNotStored(t *testing.T) {
	fc := NewForecastCache(NewMemoryCache())

	fc.Set("empty", []models.ForecastDay{}, time.Minute)

	_, found := fc.Get("empty")
	assert.False(t, found)
}

func TestNewFromConfig(t *testing.T) {
	c, err := NewFromConfig(&config.CacheConfig{Type: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewFromConfig(&config.CacheConfig{Type: "carrier-pigeon"})
	assert.Error(t, err)
}
