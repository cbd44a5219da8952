package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "localhost", config.Database.Host)
		assert.Equal(t, 5432, config.Database.Port)
		assert.Equal(t, "postgres", config.Database.User)
		assert.Equal(t, "tripplanner", config.Database.Name)
		assert.Equal(t, "disable", config.Database.SSLMode)
		assert.Equal(t, "https://api.open-meteo.com/v1", config.Forecast.BaseURL)
		assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", config.Forecast.GeocodingBaseURL)
		assert.True(t, config.Forecast.EnableCache)
		assert.True(t, config.Forecast.EnableBreaker)
		assert.Equal(t, "memory", config.Cache.Type)
		assert.Equal(t, 60, config.Risk.AlertThreshold)
		assert.Equal(t, 60, config.Risk.ImpactThreshold)
		assert.Equal(t, 75, config.Risk.SevereThreshold)
		assert.Equal(t, 30, config.Risk.SafeThreshold)
		assert.Equal(t, 2, config.Risk.SearchWindow)
		assert.Equal(t, 72, config.Auth.TokenTTLHours)
		assert.Equal(t, 10, config.Auth.BcryptCost)
		assert.True(t, config.Scheduler.Enabled)
		assert.Equal(t, 360, config.Scheduler.AlertRefreshInterval)
		assert.Equal(t, 1440, config.Scheduler.TokenCleanupInterval)
		assert.Equal(t, 14, config.Scheduler.AlertRefreshHorizonDays)
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("RISK_ALERT_THRESHOLD", "50"))
		require.NoError(t, os.Setenv("RISK_SAFE_THRESHOLD", "20"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_REDIS_ADDR", "redis:6379"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, 50, config.Risk.AlertThreshold)
		assert.Equal(t, 20, config.Risk.SafeThreshold)
		assert.Equal(t, "redis", config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.RedisAddr)
	})

	t.Run("InvalidPort", func(t *testing.T) {
		os.Clearenv()
		require.NoError(t, os.Setenv("SERVER_PORT", "70000"))

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
	})
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "trips",
		Password: "secret",
		Name:     "tripplanner",
		SSLMode:  "require",
	}

	dsn := cfg.GetDSN()
	assert.Equal(t, "host=db.example.com port=5433 user=trips password=secret dbname=tripplanner sslmode=require", dsn)
}

func TestRiskConfig_Validate(t *testing.T) {
	valid := RiskConfig{AlertThreshold: 60, ImpactThreshold: 60, SevereThreshold: 75, SafeThreshold: 30, SearchWindow: 2}
	assert.NoError(t, valid.Validate())

	severeBelowAlert := valid
	severeBelowAlert.SevereThreshold = 50
	assert.Error(t, severeBelowAlert.Validate())

	safeAboveAlert := valid
	safeAboveAlert.SafeThreshold = 60
	assert.Error(t, safeAboveAlert.Validate())

	windowTooWide := valid
	windowTooWide.SearchWindow = 8
	assert.Error(t, windowTooWide.Validate())
}

func TestCacheConfig_Validate(t *testing.T) {
	memory := CacheConfig{Type: "memory"}
	assert.NoError(t, memory.Validate())

	unknown := CacheConfig{Type: "memcached"}
	assert.Error(t, unknown.Validate())

	redisNoAddr := CacheConfig{Type: "redis"}
	assert.Error(t, redisNoAddr.Validate())
}

func TestSchedulerConfig_Validate(t *testing.T) {
	valid := SchedulerConfig{Enabled: true, AlertRefreshInterval: 360, TokenCleanupInterval: 1440, AlertRefreshHorizonDays: 14}
	assert.NoError(t, valid.Validate())

	tooFrequent := valid
	tooFrequent.AlertRefreshInterval = 0
	assert.Error(t, tooFrequent.Validate())

	horizonless := valid
	horizonless.AlertRefreshHorizonDays = 0
	assert.Error(t, horizonless.Validate())
}
