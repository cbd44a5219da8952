package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tripplanner.app/config"
	"tripplanner.app/errors"
	"tripplanner.app/models"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_probability_max," +
	"precipitation_sum,windgusts_10m_max,windspeed_10m_max," +
	"apparent_temperature_max,apparent_temperature_min,weathercode"

// OpenMeteoProvider implements ForecastProvider for the Open-Meteo API
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteoProvider creates a new Open-Meteo forecast client
func NewOpenMeteoProvider(config *config.ForecastConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}
}

type dailyForecastResponse struct {
	Daily struct {
		Time                   []string  `json:"time"`
		TemperatureMax         []float64 `json:"temperature_2m_max"`
		TemperatureMin         []float64 `json:"temperature_2m_min"`
		PrecipProbabilityMax   []float64 `json:"precipitation_probability_max"`
		PrecipSum              []float64 `json:"precipitation_sum"`
		WindGustsMax           []float64 `json:"windgusts_10m_max"`
		WindSpeedMax           []float64 `json:"windspeed_10m_max"`
		ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
		ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
		WeatherCode            []int     `json:"weathercode"`
	} `json:"daily"`
}

// GetDailyForecast retrieves one forecast record per date in [start, end]
func (p *OpenMeteoProvider) GetDailyForecast(lat, lon float64, start, end models.Date) ([]models.ForecastDay, error) {
	requestURL := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&start_date=%s&end_date=%s&daily=%s&timezone=auto",
		p.baseURL, lat, lon, start.String(), end.String(), dailyFields)

	resp, err := p.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to get forecast data", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast API returned status code %d", resp.StatusCode), nil)
	}

	var decoded dailyForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode forecast data", err)
	}

	return p.mapDays(decoded), nil
}

// mapDays zips the provider's parallel arrays into per-day records. Short
// arrays default the missing fields to zero rather than failing the fetch.
func (p *OpenMeteoProvider) mapDays(decoded dailyForecastResponse) []models.ForecastDay {
	daily := decoded.Daily
	days := make([]models.ForecastDay, 0, len(daily.Time))

	for i, raw := range daily.Time {
		date, err := models.ParseDate(raw)
		if err != nil {
			continue
		}

		day := models.ForecastDay{
			Date:              date,
			TempMax:           floatAt(daily.TemperatureMax, i),
			TempMin:           floatAt(daily.TemperatureMin, i),
			PrecipProbability: int(floatAt(daily.PrecipProbabilityMax, i)),
			PrecipSum:         floatAt(daily.PrecipSum, i),
			WindGust:          floatAt(daily.WindGustsMax, i),
			WindSpeed:         floatAt(daily.WindSpeedMax, i),
			ApparentTempMax:   floatAt(daily.ApparentTemperatureMax, i),
			ApparentTempMin:   floatAt(daily.ApparentTemperatureMin, i),
			WeatherCode:       intAt(daily.WeatherCode, i),
		}
		day.Summary, day.Advice = describeDay(day)
		days = append(days, day)
	}

	return days
}

func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func intAt(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// describeDay derives the human-readable summary and advice lines shown
// alongside the raw readings
func describeDay(day models.ForecastDay) (string, string) {
	summary := "Clear"
	advice := "Good weather – great day for walking and outdoor plans."

	if day.PrecipProbability >= 70 {
		summary = "Rainy"
		advice = "Heavy rain expected – plan indoor activities or rideshares."
	} else if day.PrecipProbability >= 40 {
		summary = "Cloudy"
		advice = "Chance of showers – keep an umbrella handy and have a backup indoor option."
	}

	if day.TempMax >= 32 {
		advice = "Very hot – schedule outdoor activities early and stay hydrated."
	}
	if day.TempMin != 0 && day.TempMin <= 5 {
		advice = "Cold weather – bring layers and keep walks shorter."
	}

	return summary, advice
}
