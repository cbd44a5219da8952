package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"tripplanner.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)
	log.Printf("  SSLMode: %s\n", cfg.Database.SSLMode)

	log.Printf("\nFORECAST:\n")
	log.Printf("  Base URL: %s\n", cfg.Forecast.BaseURL)
	log.Printf("  Geocoding URL: %s\n", cfg.Forecast.GeocodingBaseURL)
	log.Printf("  Timeout: %ds\n", cfg.Forecast.TimeoutSeconds)
	log.Printf("  Cache enabled: %t (TTL %dm, backend %s)\n", cfg.Forecast.EnableCache, cfg.Forecast.CacheTTLMinutes, cfg.Cache.Type)
	log.Printf("  Breaker enabled: %t\n", cfg.Forecast.EnableBreaker)

	log.Printf("\nRISK:\n")
	log.Printf("  Alert threshold: %d\n", cfg.Risk.AlertThreshold)
	log.Printf("  Impact threshold: %d\n", cfg.Risk.ImpactThreshold)
	log.Printf("  Severe threshold: %d\n", cfg.Risk.SevereThreshold)
	log.Printf("  Safe threshold: %d\n", cfg.Risk.SafeThreshold)
	log.Printf("  Search window: %d days\n", cfg.Risk.SearchWindow)

	log.Printf("\nAUTH:\n")
	log.Printf("  Token TTL: %dh\n", cfg.Auth.TokenTTLHours)
	log.Printf("  Bcrypt cost: %d\n", cfg.Auth.BcryptCost)

	log.Printf("\nSCHEDULER:\n")
	log.Printf("  Enabled: %t\n", cfg.Scheduler.Enabled)
	log.Printf("  Alert refresh interval: %dm\n", cfg.Scheduler.AlertRefreshInterval)
	log.Printf("  Token cleanup interval: %dm\n", cfg.Scheduler.TokenCleanupInterval)
	log.Printf("  Alert refresh horizon: %d days\n", cfg.Scheduler.AlertRefreshHorizonDays)

	log.Println("==== END CONFIGURATION ====")
}

// PrintAllEnvVars prints all environment variables sorted by name
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, envVar := range envVars {
		parts := strings.SplitN(envVar, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]
		if cd.isSensitive(name) {
			value = cd.maskString(value)
		}
		log.Printf("%s=%s\n", name, value)
	}

	log.Println("==== END ENVIRONMENT VARIABLES ====")
}

func (cd *ConfigDisplayer) isSensitive(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "PASSWORD") ||
		strings.Contains(upper, "SECRET") ||
		strings.Contains(upper, "TOKEN") ||
		strings.Contains(upper, "KEY")
}

func (cd *ConfigDisplayer) maskString(s string) string {
	if s == "" {
		return "(empty)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
