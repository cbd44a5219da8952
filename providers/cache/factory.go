package cache

import (
	"time"

	"tripplanner.app/config"
	"tripplanner.app/errors"
)

// NewFromConfig builds the cache backend named by configuration
func NewFromConfig(cfg *config.CacheConfig) (GenericCacheInterface, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		backend, err := NewRedisCache(&RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, errors.NewConfigurationError("failed to connect to redis cache", err)
		}
		return backend, nil
	default:
		return nil, errors.NewConfigurationError("unknown cache type: "+cfg.Type, nil)
	}
}
