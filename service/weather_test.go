package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/providers"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(name string) (*models.Coordinates, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coordinates), args.Error(1)
}

var _ providers.GeocodingProvider = (*mockGeocoder)(nil)

type mockForecastProvider struct {
	mock.Mock
}

func (m *mockForecastProvider) GetDailyForecast(lat, lon float64, start, end models.Date) ([]models.ForecastDay, error) {
	args := m.Called(lat, lon, start, end)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForecastDay), nil
}

var _ providers.ForecastProvider = (*mockForecastProvider)(nil)

type mockImpactService struct {
	mock.Mock
}

func (m *mockImpactService) Evaluate(trip *models.Trip, events []models.Event, days []models.AnnotatedForecastDay) ([]models.ScheduleImpact, error) {
	args := m.Called(trip, events, days)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScheduleImpact), nil
}

var _ ImpactServiceInterface = (*mockImpactService)(nil)

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) Create(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *mockEventRepository) FindByID(id uint) (*models.Event, error) {
	args := m.Called(id)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), nil
}

func (m *mockEventRepository) ListByTrip(tripID uint) ([]models.Event, error) {
	args := m.Called(tripID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), nil
}

func (m *mockEventRepository) Update(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *mockEventRepository) Delete(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

var _ EventRepositoryInterface = (*mockEventRepository)(nil)

func weatherTestTrip() *models.Trip {
	return &models.Trip{
		ID:          1,
		OwnerID:     1,
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 3),
	}
}

func TestWeatherService_GetTripWeather(t *testing.T) {
	geocoder := new(mockGeocoder)
	forecast := new(mockForecastProvider)
	alerts := new(mockAlertService)
	impacts := new(mockImpactService)
	events := new(mockEventRepository)
	svc := NewWeatherService(geocoder, forecast, alerts, impacts, events)
	trip := weatherTestTrip()

	coords := &models.Coordinates{Latitude: 38.7223, Longitude: -9.1393}
	geocoder.On("Geocode", "Lisbon").Return(coords, nil)

	forecastDays := []models.ForecastDay{
		{Date: models.NewDate(2025, 7, 1), TempMax: 24, Summary: "Clear"},
		{Date: models.NewDate(2025, 7, 2), TempMax: 20, PrecipProbability: 80, PrecipSum: 12, Summary: "Rainy"},
	}
	forecast.On("GetDailyForecast", coords.Latitude, coords.Longitude, trip.StartDate, trip.EndDate).
		Return(forecastDays, nil)

	alerts.On("UpsertTripAlerts", trip, mock.Anything).Return([]models.WeatherAlert{}, nil)
	alerts.On("ListTripAlerts", trip).Return([]models.WeatherAlert{{
		ID:       1,
		TripID:   trip.ID,
		Date:     models.NewDate(2025, 7, 2),
		Severity: models.SeverityMedium,
		Summary:  "High risk: Rainy",
		ProviderPayload: models.JSONMap{
			"factors": []interface{}{"high chance of rain", "heavy rain likely"},
		},
	}}, nil)

	response, err := svc.GetTripWeather(trip)

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", response.City)
	require.Len(t, response.Days, 2)
	assert.Equal(t, 0, response.Days[0].RiskScore)
	// 25 for the rain probability plus 15 for the accumulation
	assert.Equal(t, 40, response.Days[1].RiskScore)
	require.Len(t, response.Alerts, 1)
	assert.Equal(t, []string{"high chance of rain", "heavy rain likely"}, response.Alerts[0].ContributingFactors)
	alerts.AssertExpectations(t)
}

func TestWeatherService_GetTripWeather_UnknownDestination(t *testing.T) {
	geocoder := new(mockGeocoder)
	svc := NewWeatherService(geocoder, new(mockForecastProvider), new(mockAlertService), new(mockImpactService), new(mockEventRepository))
	trip := weatherTestTrip()

	geocoder.On("Geocode", "Lisbon").Return(nil, nil)

	response, err := svc.GetTripWeather(trip)

	require.Error(t, err)
	assert.Nil(t, response)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestWeatherService_GetTripWeather_ProviderFailureDegrades(t *testing.T) {
	geocoder := new(mockGeocoder)
	forecast := new(mockForecastProvider)
	alerts := new(mockAlertService)
	svc := NewWeatherService(geocoder, forecast, alerts, new(mockImpactService), new(mockEventRepository))
	trip := weatherTestTrip()

	geocoder.On("Geocode", "Lisbon").Return(&models.Coordinates{Latitude: 1, Longitude: 2}, nil)
	forecast.On("GetDailyForecast", 1.0, 2.0, trip.StartDate, trip.EndDate).
		Return(nil, apperrors.NewExternalAPIError("forecast service unavailable", nil))

	// Previously stored alerts must still come back
	alerts.On("UpsertTripAlerts", trip, mock.Anything).Return([]models.WeatherAlert{}, nil)
	alerts.On("ListTripAlerts", trip).Return([]models.WeatherAlert{{
		ID: 1, TripID: trip.ID, Date: models.NewDate(2025, 7, 2), Severity: models.SeverityHigh, Summary: "Unsafe conditions",
	}}, nil)

	response, err := svc.GetTripWeather(trip)

	require.NoError(t, err)
	assert.Empty(t, response.Days)
	assert.Len(t, response.Alerts, 1)
}

func TestWeatherService_GetScheduleImpacts(t *testing.T) {
	geocoder := new(mockGeocoder)
	forecast := new(mockForecastProvider)
	impacts := new(mockImpactService)
	events := new(mockEventRepository)
	svc := NewWeatherService(geocoder, forecast, new(mockAlertService), impacts, events)
	trip := weatherTestTrip()

	geocoder.On("Geocode", "Lisbon").Return(&models.Coordinates{Latitude: 1, Longitude: 2}, nil)
	forecast.On("GetDailyForecast", 1.0, 2.0, trip.StartDate, trip.EndDate).
		Return([]models.ForecastDay{{Date: models.NewDate(2025, 7, 2), PrecipProbability: 80, PrecipSum: 30, WindGust: 70}}, nil)

	tripEvents := []models.Event{{ID: 10, TripID: 1, Date: models.NewDate(2025, 7, 2), Title: "Boat tour", Type: "activity", CategoryType: "water"}}
	events.On("ListByTrip", trip.ID).Return(tripEvents, nil)

	suggested := models.NewDate(2025, 7, 1)
	impacts.On("Evaluate", trip, tripEvents, mock.Anything).Return([]models.ScheduleImpact{{
		Event:         tripEvents[0],
		Reason:        "High risk (high) on 2025-07-02",
		Factors:       []string{"high chance of rain"},
		SuggestedDate: &suggested,
		RiskScore:     90,
	}}, nil)

	details, err := svc.GetScheduleImpacts(trip)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, uint(10), details[0].Event.ID)
	assert.Equal(t, "2025-07-01", details[0].SuggestedDate.String())
	impacts.AssertExpectations(t)
}

func TestWeatherService_RefreshTripAlerts(t *testing.T) {
	geocoder := new(mockGeocoder)
	forecast := new(mockForecastProvider)
	alerts := new(mockAlertService)
	svc := NewWeatherService(geocoder, forecast, alerts, new(mockImpactService), new(mockEventRepository))
	trip := weatherTestTrip()

	geocoder.On("Geocode", "Lisbon").Return(&models.Coordinates{Latitude: 1, Longitude: 2}, nil)
	forecast.On("GetDailyForecast", 1.0, 2.0, trip.StartDate, trip.EndDate).
		Return([]models.ForecastDay{{Date: models.NewDate(2025, 7, 1)}}, nil)
	alerts.On("UpsertTripAlerts", trip, mock.Anything).Return([]models.WeatherAlert{}, nil)

	require.NoError(t, svc.RefreshTripAlerts(trip))
	alerts.AssertExpectations(t)
}
