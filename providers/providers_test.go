package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripplanner.app/config"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/providers/cache"
)

func forecastConfig(baseURL, geocodingURL string) *config.ForecastConfig {
	return &config.ForecastConfig{
		BaseURL:          baseURL,
		GeocodingBaseURL: geocodingURL,
		TimeoutSeconds:   2,
		CacheTTLMinutes:  30,
	}
}

func TestOpenMeteoGeocoder_Geocode(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/search")
		assert.Equal(t, "Lisbon", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"results":[{"name":"Lisbon","latitude":38.7223,"longitude":-9.1393}]}`))
		require.NoError(t, err)
	}))
	defer mockServer.Close()

	geocoder := NewOpenMeteoGeocoder(forecastConfig("http://unused", mockServer.URL))
	coords, err := geocoder.Geocode("Lisbon")

	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 38.7223, coords.Latitude)
	assert.Equal(t, -9.1393, coords.Longitude)
}

func TestOpenMeteoGeocoder_Geocode_NotFound(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer mockServer.Close()

	geocoder := NewOpenMeteoGeocoder(forecastConfig("http://unused", mockServer.URL))
	coords, err := geocoder.Geocode("Nowhereville")

	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestOpenMeteoGeocoder_Geocode_ServerErrorLooksLikeNotFound(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	geocoder := NewOpenMeteoGeocoder(forecastConfig("http://unused", mockServer.URL))
	coords, err := geocoder.Geocode("Lisbon")

	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestOpenMeteoGeocoder_Geocode_EmptyName(t *testing.T) {
	geocoder := NewOpenMeteoGeocoder(forecastConfig("http://unused", "http://unused"))

	coords, err := geocoder.Geocode("")

	assert.Nil(t, coords)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

const dailyPayload = `{
	"daily": {
		"time": ["2025-07-01", "2025-07-02"],
		"temperature_2m_max": [24.0, 20.5],
		"temperature_2m_min": [15.0, 13.0],
		"precipitation_probability_max": [10, 80],
		"precipitation_sum": [0.0, 12.5],
		"windgusts_10m_max": [18.0, 55.0],
		"windspeed_10m_max": [10.0, 40.0],
		"apparent_temperature_max": [25.0, 19.0],
		"apparent_temperature_min": [14.0, 12.0],
		"weathercode": [1, 61]
	}
}`

func TestOpenMeteoProvider_GetDailyForecast(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.String(), "/forecast")
		assert.Equal(t, "38.7223", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2025-07-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-07-02", r.URL.Query().Get("end_date"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(dailyPayload))
		require.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL, "http://unused"))
	days, err := provider.GetDailyForecast(38.7223, -9.1393, models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 2))

	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-07-01", days[0].Date.String())
	assert.Equal(t, 24.0, days[0].TempMax)
	assert.Equal(t, 10, days[0].PrecipProbability)
	assert.Equal(t, "Clear", days[0].Summary)

	assert.Equal(t, 80, days[1].PrecipProbability)
	assert.Equal(t, 12.5, days[1].PrecipSum)
	assert.Equal(t, 55.0, days[1].WindGust)
	assert.Equal(t, "Rainy", days[1].Summary)
	assert.Contains(t, days[1].Advice, "Heavy rain")
}

func TestOpenMeteoProvider_GetDailyForecast_ShortArraysDefaultToZero(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2025-07-01","2025-07-02"],"temperature_2m_max":[24.0]}}`))
	}))
	defer mockServer.Close()

	provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL, "http://unused"))
	days, err := provider.GetDailyForecast(1, 2, models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 2))

	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 24.0, days[0].TempMax)
	assert.Equal(t, 0.0, days[1].TempMax)
}

func TestOpenMeteoProvider_GetDailyForecast_ServerError(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer mockServer.Close()

	provider := NewOpenMeteoProvider(forecastConfig(mockServer.URL, "http://unused"))
	days, err := provider.GetDailyForecast(1, 2, models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 2))

	assert.Nil(t, days)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
}

// countingProvider counts upstream calls so the caching and breaker proxies
// can be observed
type countingProvider struct {
	calls int32
	days  []models.ForecastDay
	err   error
}

func (p *countingProvider) GetDailyForecast(_, _ float64, _, _ models.Date) ([]models.ForecastDay, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return nil, p.err
	}
	return p.days, nil
}

func TestCachedForecastProvider_SecondCallHitsCache(t *testing.T) {
	upstream := &countingProvider{days: []models.ForecastDay{{Date: models.NewDate(2025, 7, 1), TempMax: 24}}}
	forecastCache := cache.NewForecastCache(cache.NewMemoryCache())
	provider := NewCachedForecastProvider(upstream, forecastCache, time.Minute)

	start, end := models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 3)

	first, err := provider.GetDailyForecast(1.5, 2.5, start, end)
	require.NoError(t, err)
	second, err := provider.GetDailyForecast(1.5, 2.5, start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&upstream.calls))

	// A different range misses
	_, err = provider.GetDailyForecast(1.5, 2.5, start, models.NewDate(2025, 7, 4))
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&upstream.calls))
}

func TestCachedForecastProvider_EmptyResponsesNotCached(t *testing.T) {
	upstream := &countingProvider{days: []models.ForecastDay{}}
	forecastCache := cache.NewForecastCache(cache.NewMemoryCache())
	provider := NewCachedForecastProvider(upstream, forecastCache, time.Minute)

	start, end := models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 3)
	_, err := provider.GetDailyForecast(1, 2, start, end)
	require.NoError(t, err)
	_, err = provider.GetDailyForecast(1, 2, start, end)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&upstream.calls))
}

func TestBreakerForecastProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	upstream := &countingProvider{err: apperrors.NewExternalAPIError("boom", nil)}
	provider := NewBreakerForecastProvider(upstream)

	start, end := models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 3)

	for i := 0; i < 6; i++ {
		_, err := provider.GetDailyForecast(1, 2, start, end)
		assert.Error(t, err)
	}
	failedCalls := atomic.LoadInt32(&upstream.calls)
	assert.Equal(t, int32(6), failedCalls)

	// The breaker is now open; upstream must not see further calls
	_, err := provider.GetDailyForecast(1, 2, start, end)
	assert.Error(t, err)
	assert.Equal(t, failedCalls, atomic.LoadInt32(&upstream.calls))
}

func TestBreakerForecastProvider_PassesThroughSuccess(t *testing.T) {
	upstream := &countingProvider{days: []models.ForecastDay{{Date: models.NewDate(2025, 7, 1)}}}
	provider := NewBreakerForecastProvider(upstream)

	days, err := provider.GetDailyForecast(1, 2, models.NewDate(2025, 7, 1), models.NewDate(2025, 7, 1))

	require.NoError(t, err)
	assert.Len(t, days, 1)
}
