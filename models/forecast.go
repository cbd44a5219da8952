package models

// Risk categories derived from a day's risk score
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// ForecastDay holds the per-day meteorological fields returned by the
// forecast provider. Immutable once fetched; absent numeric fields stay zero.
type ForecastDay struct {
	Date              Date    `json:"date"`
	TempMax           float64 `json:"temp_max"`
	TempMin           float64 `json:"temp_min"`
	PrecipProbability int     `json:"precip_prob"`
	PrecipSum         float64 `json:"precip_sum"`
	WindGust          float64 `json:"wind_gust"`
	WindSpeed         float64 `json:"wind_speed"`
	ApparentTempMax   float64 `json:"apparent_max"`
	ApparentTempMin   float64 `json:"apparent_min"`
	WeatherCode       int     `json:"weather_code"`
	Summary           string  `json:"summary"`
	Advice            string  `json:"advice"`
}

// RiskAssessment is the scorer's verdict for one forecast day
type RiskAssessment struct {
	RiskScore           int      `json:"risk_score"`
	RiskCategory        string   `json:"risk_category"`
	ContributingFactors []string `json:"contributing_factors"`
}

// AnnotatedForecastDay pairs a forecast day with its risk assessment.
// Derived, never persisted directly; it only materializes into alerts once
// the risk crosses the alert threshold.
type AnnotatedForecastDay struct {
	ForecastDay
	RiskAssessment
}

// ScheduleImpact flags one itinerary event exposed to a hazardous day,
// with an optional safer alternate date. Computed fresh on every request.
type ScheduleImpact struct {
	Event         Event    `json:"event"`
	Reason        string   `json:"reason"`
	Factors       []string `json:"factors"`
	SuggestedDate *Date    `json:"suggested_date"`
	RiskScore     int      `json:"risk_score"`
}

// Coordinates is a geocoded latitude/longitude pair
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
