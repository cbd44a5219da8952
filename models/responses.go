package models

// AuthResponse carries a bearer token and its owner
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TripWeatherDay is one annotated forecast day as surfaced to API consumers
type TripWeatherDay struct {
	Date                Date     `json:"date"`
	TempMax             float64  `json:"temp_max"`
	TempMin             float64  `json:"temp_min"`
	PrecipProbability   int      `json:"precip_prob"`
	Summary             string   `json:"summary"`
	Advice              string   `json:"advice"`
	RiskScore           int      `json:"risk_score"`
	RiskCategory        string   `json:"risk_category"`
	ContributingFactors []string `json:"contributing_factors"`
}

// WeatherAlertDetail mirrors a persisted alert with the payload's factors
// surfaced as contributing_factors
type WeatherAlertDetail struct {
	ID                  uint     `json:"id"`
	TripID              uint     `json:"trip_id"`
	Date                Date     `json:"date"`
	EventID             *uint    `json:"event_id,omitempty"`
	Severity            string   `json:"severity"`
	Summary             string   `json:"summary"`
	ContributingFactors []string `json:"contributing_factors"`
	ProviderPayload     JSONMap  `json:"provider_payload,omitempty"`
}

// NewWeatherAlertDetail builds the API view of a persisted alert
func NewWeatherAlertDetail(alert *WeatherAlert) WeatherAlertDetail {
	return WeatherAlertDetail{
		ID:                  alert.ID,
		TripID:              alert.TripID,
		Date:                alert.Date,
		EventID:             alert.EventID,
		Severity:            alert.Severity,
		Summary:             alert.Summary,
		ContributingFactors: alert.ProviderPayload.StringSlice("factors"),
		ProviderPayload:     alert.ProviderPayload,
	}
}

// TripWeatherResponse is the weather-summary payload for a trip
type TripWeatherResponse struct {
	City      string               `json:"city"`
	StartDate Date                 `json:"start_date"`
	EndDate   Date                 `json:"end_date"`
	Days      []TripWeatherDay     `json:"days"`
	Alerts    []WeatherAlertDetail `json:"alerts"`
}

// ImpactEventRef is the event subset embedded in a schedule impact
type ImpactEventRef struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Date         Date   `json:"date"`
	CategoryType string `json:"category_type"`
	Type         string `json:"type"`
}

// ScheduleImpactDetail is one schedule impact as surfaced to API consumers
type ScheduleImpactDetail struct {
	Event         ImpactEventRef `json:"event"`
	Reason        string         `json:"reason"`
	Factors       []string       `json:"factors"`
	SuggestedDate *Date          `json:"suggested_date"`
	RiskScore     int            `json:"risk_score"`
}

// NewScheduleImpactDetail builds the API view of a schedule impact
func NewScheduleImpactDetail(impact ScheduleImpact) ScheduleImpactDetail {
	return ScheduleImpactDetail{
		Event: ImpactEventRef{
			ID:           impact.Event.ID,
			Title:        impact.Event.Title,
			Date:         impact.Event.Date,
			CategoryType: impact.Event.CategoryType,
			Type:         impact.Event.Type,
		},
		Reason:        impact.Reason,
		Factors:       impact.Factors,
		SuggestedDate: impact.SuggestedDate,
		RiskScore:     impact.RiskScore,
	}
}

// EnvelopeSummary pairs an envelope with its actual spend
type EnvelopeSummary struct {
	Envelope    BudgetEnvelope `json:"envelope"`
	ActualSpent float64        `json:"actual_spent"`
	Remaining   float64        `json:"remaining"`
	PercentUsed float64        `json:"percent_used"`
}

// CategoryTotals aggregates planned and actual spend per category
type CategoryTotals struct {
	PlannedTotal float64 `json:"planned_total"`
	ActualTotal  float64 `json:"actual_total"`
}

// BudgetSummaryResponse is the budget overview for a trip
type BudgetSummaryResponse struct {
	Envelopes             []EnvelopeSummary         `json:"envelopes"`
	Expenses              []Expense                 `json:"expenses"`
	Categories            map[string]CategoryTotals `json:"categories"`
	PlannedTotalAll       float64                   `json:"planned_total_all"`
	ActualTotalAll        float64                   `json:"actual_total_all"`
	RemainingTotal        float64                   `json:"remaining_total"`
	RecommendedDailySpend float64                   `json:"recommended_daily_spend"`
}
