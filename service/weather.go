package service

import (
	"log"

	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/providers"
	"tripplanner.app/risk"
)

// WeatherService orchestrates the full trip-weather flow: geocode the
// destination, fetch and annotate the forecast, persist alerts, and evaluate
// schedule impacts
type WeatherService struct {
	geocoder      providers.GeocodingProvider
	forecast      providers.ForecastProvider
	alertService  AlertServiceInterface
	impactService ImpactServiceInterface
	eventRepo     EventRepositoryInterface
}

// NewWeatherService creates a new weather service
func NewWeatherService(
	geocoder providers.GeocodingProvider,
	forecast providers.ForecastProvider,
	alertService AlertServiceInterface,
	impactService ImpactServiceInterface,
	eventRepo EventRepositoryInterface,
) *WeatherService {
	return &WeatherService{
		geocoder:      geocoder,
		forecast:      forecast,
		alertService:  alertService,
		impactService: impactService,
		eventRepo:     eventRepo,
	}
}

// GetTripWeather builds the weather summary for a trip. An unresolvable
// destination is a not-found error; forecast provider failures degrade to an
// empty day list so the stored alerts still render.
func (s *WeatherService) GetTripWeather(trip *models.Trip) (*models.TripWeatherResponse, error) {
	days, err := s.annotatedForecast(trip)
	if err != nil {
		return nil, err
	}

	if _, err := s.alertService.UpsertTripAlerts(trip, days); err != nil {
		return nil, err
	}

	alerts, err := s.alertService.ListTripAlerts(trip)
	if err != nil {
		return nil, err
	}

	response := &models.TripWeatherResponse{
		City:      trip.Destination,
		StartDate: trip.StartDate,
		EndDate:   trip.EndDate,
		Days:      make([]models.TripWeatherDay, 0, len(days)),
		Alerts:    make([]models.WeatherAlertDetail, 0, len(alerts)),
	}
	for _, day := range days {
		response.Days = append(response.Days, models.TripWeatherDay{
			Date:                day.Date,
			TempMax:             day.TempMax,
			TempMin:             day.TempMin,
			PrecipProbability:   day.PrecipProbability,
			Summary:             day.Summary,
			Advice:              day.Advice,
			RiskScore:           day.RiskScore,
			RiskCategory:        day.RiskCategory,
			ContributingFactors: day.ContributingFactors,
		})
	}
	for i := range alerts {
		response.Alerts = append(response.Alerts, models.NewWeatherAlertDetail(&alerts[i]))
	}
	return response, nil
}

// GetScheduleImpacts recomputes schedule impacts for a trip from a fresh
// forecast and the trip's current events
func (s *WeatherService) GetScheduleImpacts(trip *models.Trip) ([]models.ScheduleImpactDetail, error) {
	days, err := s.annotatedForecast(trip)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByTrip(trip.ID)
	if err != nil {
		return nil, err
	}

	impacts, err := s.impactService.Evaluate(trip, events, days)
	if err != nil {
		return nil, err
	}

	details := make([]models.ScheduleImpactDetail, 0, len(impacts))
	for _, impact := range impacts {
		details = append(details, models.NewScheduleImpactDetail(impact))
	}
	return details, nil
}

// GetTripAlerts returns the persisted alerts for a trip without refreshing
// the forecast
func (s *WeatherService) GetTripAlerts(trip *models.Trip) ([]models.WeatherAlertDetail, error) {
	alerts, err := s.alertService.ListTripAlerts(trip)
	if err != nil {
		return nil, err
	}
	details := make([]models.WeatherAlertDetail, 0, len(alerts))
	for i := range alerts {
		details = append(details, models.NewWeatherAlertDetail(&alerts[i]))
	}
	return details, nil
}

// RefreshTripAlerts fetches the forecast and upserts trip-level alerts
// without building a response. Used by the background refresh job.
func (s *WeatherService) RefreshTripAlerts(trip *models.Trip) error {
	days, err := s.annotatedForecast(trip)
	if err != nil {
		return err
	}
	_, err = s.alertService.UpsertTripAlerts(trip, days)
	return err
}

func (s *WeatherService) annotatedForecast(trip *models.Trip) ([]models.AnnotatedForecastDay, error) {
	coords, err := s.geocoder.Geocode(trip.Destination)
	if err != nil {
		return nil, err
	}
	if coords == nil {
		return nil, apperrors.NewNotFoundError("could not resolve trip destination: " + trip.Destination)
	}

	forecastDays, err := s.forecast.GetDailyForecast(coords.Latitude, coords.Longitude, trip.StartDate, trip.EndDate)
	if err != nil {
		// Alerts written on earlier runs must stay reachable, so a
		// provider outage degrades to an empty forecast
		log.Printf("[WARNING] forecast fetch failed for trip %d: %v\n", trip.ID, err)
		forecastDays = nil
	}

	return risk.Annotate(forecastDays), nil
}
