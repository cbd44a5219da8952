// Package providers implements adapters for the external geocoding and
// forecast services, plus the caching and circuit-breaker proxies around them
package providers

import "tripplanner.app/models"

// GeocodingProvider resolves a place name to coordinates. A nil result with a
// nil error means the place could not be resolved (first match wins; there is
// no ambiguity handling).
type GeocodingProvider interface {
	Geocode(name string) (*models.Coordinates, error)
}

// ForecastProvider returns one record per date in the inclusive range
type ForecastProvider interface {
	GetDailyForecast(lat, lon float64, start, end models.Date) ([]models.ForecastDay, error)
}
