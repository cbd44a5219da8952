package providers

import (
	"fmt"
	"time"

	"tripplanner.app/models"
	"tripplanner.app/providers/cache"
)

// CachedForecastProvider serves forecasts from a TTL cache before falling
// through to the wrapped provider. Only non-empty responses are cached so a
// provider outage never pins "no data" for a whole TTL window.
type CachedForecastProvider struct {
	provider ForecastProvider
	cache    cache.ForecastCacheInterface
	ttl      time.Duration
}

func NewCachedForecastProvider(provider ForecastProvider, forecastCache cache.ForecastCacheInterface, ttl time.Duration) *CachedForecastProvider {
	return &CachedForecastProvider{
		provider: provider,
		cache:    forecastCache,
		ttl:      ttl,
	}
}

func (p *CachedForecastProvider) GetDailyForecast(lat, lon float64, start, end models.Date) ([]models.ForecastDay, error) {
	key := cacheKey(lat, lon, start, end)

	if days, found := p.cache.Get(key); found {
		return days, nil
	}

	days, err := p.provider.GetDailyForecast(lat, lon, start, end)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, days, p.ttl)
	return days, nil
}

func cacheKey(lat, lon float64, start, end models.Date) string {
	return fmt.Sprintf("forecast:%.4f:%.4f:%s:%s", lat, lon, start.String(), end.String())
}
