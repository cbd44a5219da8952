// Package service implements the application's business logic on top of the
// repository and provider layers
package service

import (
	"time"

	"tripplanner.app/models"
	"tripplanner.app/repository"
)

// AuthServiceInterface defines the interface for account operations
type AuthServiceInterface interface {
	Register(req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(req *models.LoginRequest) (*models.AuthResponse, error)
	Authenticate(token string) (*models.User, error)
	CleanupExpiredTokens() error
}

// TripServiceInterface defines the interface for trip, membership,
// destination, and event operations
type TripServiceInterface interface {
	Authorize(tripID, userID uint, minRole string) (*models.Trip, error)
	CreateTrip(userID uint, req *models.TripCreateRequest) (*models.Trip, error)
	ListTrips(userID uint) ([]models.Trip, error)
	GetTrip(tripID, userID uint) (*models.Trip, error)
	UpdateTrip(tripID, userID uint, req *models.TripUpdateRequest) (*models.Trip, error)
	DeleteTrip(tripID, userID uint) error
	ListMembers(tripID, userID uint) ([]models.TripMember, error)
	UpsertMember(tripID, userID uint, req *models.MemberUpsertRequest) (*models.TripMember, error)
	RemoveMember(tripID, userID, memberUserID uint) error
	AddDestination(tripID, userID uint, req *models.DestinationCreateRequest) (*models.TripDestination, error)
	ListDestinations(tripID, userID uint) ([]models.TripDestination, error)
	RemoveDestination(tripID, userID, destinationID uint) error
	CreateEvent(tripID, userID uint, req *models.EventCreateRequest) (*models.Event, error)
	ListEvents(tripID, userID uint) ([]models.Event, error)
	UpdateEvent(tripID, userID, eventID uint, req *models.EventUpdateRequest) (*models.Event, error)
	DeleteEvent(tripID, userID, eventID uint) error
}

// BudgetServiceInterface defines the interface for budget operations
type BudgetServiceInterface interface {
	Summary(trip *models.Trip) (*models.BudgetSummaryResponse, error)
	SeedEnvelopes(trip *models.Trip) error
	Recalculate(trip *models.Trip) (*models.BudgetSummaryResponse, error)
	CreateEnvelope(trip *models.Trip, req *models.EnvelopeCreateRequest) (*models.BudgetEnvelope, error)
	UpdateEnvelope(trip *models.Trip, envelopeID uint, req *models.EnvelopeUpdateRequest) (*models.BudgetEnvelope, error)
	DeleteEnvelope(trip *models.Trip, envelopeID uint) error
	CreateExpense(trip *models.Trip, req *models.ExpenseCreateRequest) (*models.Expense, error)
	UpdateExpense(trip *models.Trip, expenseID uint, req *models.ExpenseUpdateRequest) (*models.Expense, error)
	DeleteExpense(trip *models.Trip, expenseID uint) error
}

// WeatherServiceInterface defines the interface for trip weather operations
type WeatherServiceInterface interface {
	GetTripWeather(trip *models.Trip) (*models.TripWeatherResponse, error)
	GetScheduleImpacts(trip *models.Trip) ([]models.ScheduleImpactDetail, error)
	GetTripAlerts(trip *models.Trip) ([]models.WeatherAlertDetail, error)
	RefreshTripAlerts(trip *models.Trip) error
}

// AlertServiceInterface persists weather alerts
type AlertServiceInterface interface {
	UpsertTripAlerts(trip *models.Trip, days []models.AnnotatedForecastDay) ([]models.WeatherAlert, error)
	UpsertEventAlert(trip *models.Trip, event *models.Event, day models.AnnotatedForecastDay, suggested *models.Date) (*models.WeatherAlert, error)
	ListTripAlerts(trip *models.Trip) ([]models.WeatherAlert, error)
}

// ImpactServiceInterface evaluates schedule impacts against a forecast
type ImpactServiceInterface interface {
	Evaluate(trip *models.Trip, events []models.Event, days []models.AnnotatedForecastDay) ([]models.ScheduleImpact, error)
}

// UserRepositoryInterface defines the interface for user data operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
}

// TokenRepositoryInterface defines the interface for token data operations
type TokenRepositoryInterface interface {
	CreateToken(userID uint, expiresIn time.Duration) (*models.Token, error)
	FindValidToken(token string) (*models.Token, error)
	DeleteToken(token *models.Token) error
	DeleteExpiredTokens() error
}

// TripRepositoryInterface defines the interface for trip data operations
type TripRepositoryInterface interface {
	Create(trip *models.Trip) error
	FindByID(id uint) (*models.Trip, error)
	ListForUser(userID uint) ([]models.Trip, error)
	ListInDateWindow(from, to models.Date) ([]models.Trip, error)
	Update(trip *models.Trip) error
	Delete(trip *models.Trip) error
	FindMember(tripID, userID uint) (*models.TripMember, error)
	ListMembers(tripID uint) ([]models.TripMember, error)
	SaveMember(member *models.TripMember) error
	DeleteMember(member *models.TripMember) error
}

// EventRepositoryInterface defines the interface for event data operations
type EventRepositoryInterface interface {
	Create(event *models.Event) error
	FindByID(id uint) (*models.Event, error)
	ListByTrip(tripID uint) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(event *models.Event) error
}

// DestinationRepositoryInterface defines the interface for destination data operations
type DestinationRepositoryInterface interface {
	CreateLocation(location *models.Location) error
	CreateDestination(destination *models.TripDestination) error
	FindDestinationByID(id uint) (*models.TripDestination, error)
	ListByTrip(tripID uint) ([]models.TripDestination, error)
	DeleteDestination(destination *models.TripDestination) error
}

// BudgetRepositoryInterface defines the interface for budget data operations
type BudgetRepositoryInterface interface {
	CreateEnvelope(envelope *models.BudgetEnvelope) error
	FindEnvelopeByID(id uint) (*models.BudgetEnvelope, error)
	ListEnvelopesByTrip(tripID uint) ([]models.BudgetEnvelope, error)
	SaveEnvelope(envelope *models.BudgetEnvelope) error
	DeleteEnvelope(envelope *models.BudgetEnvelope) error
	CreateExpense(expense *models.Expense) error
	FindExpenseByID(id uint) (*models.Expense, error)
	ListExpensesByTrip(tripID uint) ([]models.Expense, error)
	SaveExpense(expense *models.Expense) error
	DeleteExpense(expense *models.Expense) error
}

// Compile-time checks that the concrete types satisfy their interfaces
var (
	_ AuthServiceInterface           = (*AuthService)(nil)
	_ TripServiceInterface           = (*TripService)(nil)
	_ BudgetServiceInterface         = (*BudgetService)(nil)
	_ WeatherServiceInterface        = (*WeatherService)(nil)
	_ AlertServiceInterface          = (*AlertService)(nil)
	_ ImpactServiceInterface         = (*ImpactService)(nil)
	_ UserRepositoryInterface        = (*repository.UserRepository)(nil)
	_ TokenRepositoryInterface       = (*repository.TokenRepository)(nil)
	_ TripRepositoryInterface        = (*repository.TripRepository)(nil)
	_ EventRepositoryInterface       = (*repository.EventRepository)(nil)
	_ DestinationRepositoryInterface = (*repository.DestinationRepository)(nil)
)
