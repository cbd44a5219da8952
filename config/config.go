package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"tripplanner.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Forecast  ForecastConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Risk      RiskConfig      `split_words:"true"`
	Auth      AuthConfig      `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"tripplanner"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted database connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ForecastConfig contains settings for the Open-Meteo forecast and geocoding services
type ForecastConfig struct {
	BaseURL          string `envconfig:"FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1"`
	GeocodingBaseURL string `envconfig:"GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
	TimeoutSeconds   int    `envconfig:"FORECAST_TIMEOUT_SECONDS" default:"10"`
	CacheTTLMinutes  int    `envconfig:"FORECAST_CACHE_TTL_MINUTES" default:"30"`
	EnableCache      bool   `envconfig:"FORECAST_ENABLE_CACHE" default:"true"`
	EnableBreaker    bool   `envconfig:"FORECAST_ENABLE_BREAKER" default:"true"`
}

// CacheConfig contains settings for the forecast cache backend
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"` // "memory" or "redis"
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
}

// RiskConfig contains the weather risk engine thresholds.
// Values mirror the advisory semantics: a day at or above AlertThreshold
// produces an alert, SevereThreshold splits medium from high severity, and
// alternate dates must score below SafeThreshold to be suggested.
type RiskConfig struct {
	AlertThreshold  int `envconfig:"RISK_ALERT_THRESHOLD" default:"60"`
	ImpactThreshold int `envconfig:"RISK_IMPACT_THRESHOLD" default:"60"`
	SevereThreshold int `envconfig:"RISK_SEVERE_THRESHOLD" default:"75"`
	SafeThreshold   int `envconfig:"RISK_SAFE_THRESHOLD" default:"30"`
	SearchWindow    int `envconfig:"RISK_SEARCH_WINDOW_DAYS" default:"2"`
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	TokenTTLHours int `envconfig:"AUTH_TOKEN_TTL_HOURS" default:"72"`
	BcryptCost    int `envconfig:"AUTH_BCRYPT_COST" default:"10"`
}

// SchedulerConfig contains settings for the background task scheduler
type SchedulerConfig struct {
	Enabled                 bool `envconfig:"SCHEDULER_ENABLED" default:"true"`
	AlertRefreshInterval    int  `envconfig:"ALERT_REFRESH_INTERVAL" default:"360"`
	TokenCleanupInterval    int  `envconfig:"TOKEN_CLEANUP_INTERVAL" default:"1440"`
	AlertRefreshHorizonDays int  `envconfig:"ALERT_REFRESH_HORIZON_DAYS" default:"14"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Risk.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// ValidateSSLMode validates the SSL mode configuration
func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > 65535 {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	if err := d.ValidateSSLMode(); err != nil {
		return err
	}
	return nil
}

// Validate checks forecast service configuration
func (f *ForecastConfig) Validate() error {
	if f.BaseURL == "" {
		return errors.NewConfigurationError("FORECAST_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(f.BaseURL, "http://") && !strings.HasPrefix(f.BaseURL, "https://") {
		return errors.NewConfigurationError("FORECAST_BASE_URL must start with http:// or https://", nil)
	}
	if f.GeocodingBaseURL == "" {
		return errors.NewConfigurationError("GEOCODING_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(f.GeocodingBaseURL, "http://") && !strings.HasPrefix(f.GeocodingBaseURL, "https://") {
		return errors.NewConfigurationError("GEOCODING_BASE_URL must start with http:// or https://", nil)
	}
	if f.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("FORECAST_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if f.CacheTTLMinutes < 1 {
		return errors.NewConfigurationError("FORECAST_CACHE_TTL_MINUTES must be at least 1", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError("CACHE_TYPE must be either 'memory' or 'redis'", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is 'redis'", nil)
	}
	return nil
}

// Validate checks risk engine thresholds
func (r *RiskConfig) Validate() error {
	if r.AlertThreshold < 0 || r.AlertThreshold > 100 {
		return errors.NewConfigurationError("RISK_ALERT_THRESHOLD must be between 0 and 100", nil)
	}
	if r.ImpactThreshold < 0 || r.ImpactThreshold > 100 {
		return errors.NewConfigurationError("RISK_IMPACT_THRESHOLD must be between 0 and 100", nil)
	}
	if r.SevereThreshold < r.AlertThreshold {
		return errors.NewConfigurationError("RISK_SEVERE_THRESHOLD cannot be below RISK_ALERT_THRESHOLD", nil)
	}
	if r.SevereThreshold > 100 {
		return errors.NewConfigurationError("RISK_SEVERE_THRESHOLD must be between 0 and 100", nil)
	}
	if r.SafeThreshold < 0 || r.SafeThreshold >= r.AlertThreshold {
		return errors.NewConfigurationError("RISK_SAFE_THRESHOLD must be non-negative and below RISK_ALERT_THRESHOLD", nil)
	}
	if r.SearchWindow < 1 || r.SearchWindow > 7 {
		return errors.NewConfigurationError("RISK_SEARCH_WINDOW_DAYS must be between 1 and 7", nil)
	}
	return nil
}

// Validate checks authentication configuration
func (a *AuthConfig) Validate() error {
	if a.TokenTTLHours < 1 {
		return errors.NewConfigurationError("AUTH_TOKEN_TTL_HOURS must be at least 1 hour", nil)
	}
	if a.BcryptCost < 4 || a.BcryptCost > 31 {
		return errors.NewConfigurationError("AUTH_BCRYPT_COST must be between 4 and 31", nil)
	}
	return nil
}

// Validate checks scheduler configuration
func (s *SchedulerConfig) Validate() error {
	if s.AlertRefreshInterval < 1 {
		return errors.NewConfigurationError("ALERT_REFRESH_INTERVAL must be at least 1 minute", nil)
	}
	if s.AlertRefreshInterval > 10080 {
		return errors.NewConfigurationError("ALERT_REFRESH_INTERVAL cannot exceed 10080 minutes (7 days)", nil)
	}
	if s.TokenCleanupInterval < 1 {
		return errors.NewConfigurationError("TOKEN_CLEANUP_INTERVAL must be at least 1 minute", nil)
	}
	if s.AlertRefreshHorizonDays < 1 {
		return errors.NewConfigurationError("ALERT_REFRESH_HORIZON_DAYS must be at least 1", nil)
	}
	return nil
}
