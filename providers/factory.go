package providers

import (
	"time"

	"tripplanner.app/config"
	"tripplanner.app/providers/cache"
)

// NewForecastProviderChain assembles the configured forecast provider stack:
// raw Open-Meteo client, optionally behind a circuit breaker, optionally
// behind an instrumented TTL cache. Proxies nest so the cache is consulted
// before the breaker ever sees a request.
func NewForecastProviderChain(cfg *config.Config) (ForecastProvider, error) {
	var provider ForecastProvider = NewOpenMeteoProvider(&cfg.Forecast)

	if cfg.Forecast.EnableBreaker {
		provider = NewBreakerForecastProvider(provider)
	}

	if cfg.Forecast.EnableCache {
		backend, err := cache.NewFromConfig(&cfg.Cache)
		if err != nil {
			return nil, err
		}
		instrumented := NewInstrumentedCache(backend, cfg.Cache.Type)
		forecastCache := cache.NewForecastCache(instrumented)
		ttl := time.Duration(cfg.Forecast.CacheTTLMinutes) * time.Minute
		provider = NewCachedForecastProvider(provider, forecastCache, ttl)
	}

	return provider, nil
}
