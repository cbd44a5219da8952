// Package api implements the HTTP surface of the trip planner
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"tripplanner.app/config"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/service"
)

const userContextKey = "currentUser"

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	db             *gorm.DB
	config         *config.Config
	authService    service.AuthServiceInterface
	tripService    service.TripServiceInterface
	budgetService  service.BudgetServiceInterface
	weatherService service.WeatherServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	authService service.AuthServiceInterface,
	tripService service.TripServiceInterface,
	budgetService service.BudgetServiceInterface,
	weatherService service.WeatherServiceInterface,
) *Server {
	router := gin.Default()

	server := &Server{
		router:         router,
		db:             db,
		config:         config,
		authService:    authService,
		tripService:    tripService,
		budgetService:  budgetService,
		weatherService: weatherService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
		}

		trips := api.Group("/trips", s.requireAuth)
		{
			trips.POST("", s.createTrip)
			trips.GET("", s.listTrips)
			trips.GET("/:id", s.getTrip)
			trips.PUT("/:id", s.updateTrip)
			trips.DELETE("/:id", s.deleteTrip)

			trips.GET("/:id/members", s.listMembers)
			trips.PUT("/:id/members", s.upsertMember)
			trips.DELETE("/:id/members/:userID", s.removeMember)

			trips.GET("/:id/destinations", s.listDestinations)
			trips.POST("/:id/destinations", s.addDestination)
			trips.DELETE("/:id/destinations/:destinationID", s.removeDestination)

			trips.GET("/:id/events", s.listEvents)
			trips.POST("/:id/events", s.createEvent)
			trips.PUT("/:id/events/:eventID", s.updateEvent)
			trips.DELETE("/:id/events/:eventID", s.deleteEvent)

			trips.GET("/:id/budget", s.budgetSummary)
			trips.POST("/:id/budget/recalculate", s.recalculateBudget)
			trips.POST("/:id/budget/envelopes", s.createEnvelope)
			trips.PUT("/:id/budget/envelopes/:envelopeID", s.updateEnvelope)
			trips.DELETE("/:id/budget/envelopes/:envelopeID", s.deleteEnvelope)
			trips.POST("/:id/budget/expenses", s.createExpense)
			trips.PUT("/:id/budget/expenses/:expenseID", s.updateExpense)
			trips.DELETE("/:id/budget/expenses/:expenseID", s.deleteExpense)

			trips.GET("/:id/weather", s.tripWeather)
			trips.GET("/:id/alerts", s.tripAlerts)
			trips.GET("/:id/schedule/alerts", s.scheduleImpacts)
		}
	}
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	dbUp := err == nil && sqlDB.Ping() == nil

	if !dbUp {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": true})
}

// requireAuth resolves the bearer token into a user; all trip routes sit
// behind it
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		s.handleError(c, apperrors.NewTokenError("missing bearer token"))
		c.Abort()
		return
	}

	user, err := s.authService.Authenticate(header[len(prefix):])
	if err != nil {
		s.handleError(c, err)
		c.Abort()
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

func (s *Server) currentUser(c *gin.Context) *models.User {
	return c.MustGet(userContextKey).(*models.User)
}

func (s *Server) pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s parameter", name))
	}
	return uint(id), nil
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	resp, err := s.authService.Register(&req)
	if err != nil {
		slog.Error("Registration error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}

	slog.Debug("Account registered", "email", req.Email)
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	resp, err := s.authService.Login(&req)
	if err != nil {
		slog.Error("Login error", "error", err, "email", req.Email)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createTrip(c *gin.Context) {
	var req models.TripCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	trip, err := s.tripService.CreateTrip(s.currentUser(c).ID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	// A failed seed leaves the trip usable; envelopes can be rebuilt through
	// the budget recalculation endpoint.
	if err := s.budgetService.SeedEnvelopes(trip); err != nil {
		slog.Warn("Failed to seed default budget envelopes", "tripID", trip.ID, "error", err)
	}

	c.JSON(http.StatusCreated, trip)
}

func (s *Server) listTrips(c *gin.Context) {
	trips, err := s.tripService.ListTrips(s.currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (s *Server) getTrip(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	trip, err := s.tripService.GetTrip(tripID, s.currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) updateTrip(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.TripUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	trip, err := s.tripService.UpdateTrip(tripID, s.currentUser(c).ID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (s *Server) deleteTrip(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.tripService.DeleteTrip(tripID, s.currentUser(c).ID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

func (s *Server) listMembers(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	members, err := s.tripService.ListMembers(tripID, s.currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (s *Server) upsertMember(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.MemberUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	member, err := s.tripService.UpsertMember(tripID, s.currentUser(c).ID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (s *Server) removeMember(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	memberUserID, err := s.pathID(c, "userID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.tripService.RemoveMember(tripID, s.currentUser(c).ID, memberUserID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func (s *Server) listDestinations(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	destinations, err := s.tripService.ListDestinations(tripID, s.currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, destinations)
}

func (s *Server) addDestination(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.DestinationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	destination, err := s.tripService.AddDestination(tripID, s.currentUser(c).ID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, destination)
}

func (s *Server) removeDestination(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	destinationID, err := s.pathID(c, "destinationID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.tripService.RemoveDestination(tripID, s.currentUser(c).ID, destinationID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Destination removed"})
}

func (s *Server) listEvents(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	events, err := s.tripService.ListEvents(tripID, s.currentUser(c).ID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) createEvent(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	event, err := s.tripService.CreateEvent(tripID, s.currentUser(c).ID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) updateEvent(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	eventID, err := s.pathID(c, "eventID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	event, err := s.tripService.UpdateEvent(tripID, s.currentUser(c).ID, eventID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteEvent(c *gin.Context) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return
	}
	eventID, err := s.pathID(c, "eventID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.tripService.DeleteEvent(tripID, s.currentUser(c).ID, eventID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// budgetTrip authorizes budget access; reads need the viewer role, writes
// need editor
func (s *Server) budgetTrip(c *gin.Context, minRole string) (*models.Trip, bool) {
	tripID, err := s.pathID(c, "id")
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	trip, err := s.tripService.Authorize(tripID, s.currentUser(c).ID, minRole)
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	return trip, true
}

func (s *Server) budgetSummary(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleViewer)
	if !ok {
		return
	}

	summary, err := s.budgetService.Summary(trip)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) recalculateBudget(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}

	summary, err := s.budgetService.Recalculate(trip)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) createEnvelope(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}

	var req models.EnvelopeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	envelope, err := s.budgetService.CreateEnvelope(trip, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, envelope)
}

func (s *Server) updateEnvelope(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}
	envelopeID, err := s.pathID(c, "envelopeID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.EnvelopeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	envelope, err := s.budgetService.UpdateEnvelope(trip, envelopeID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}

func (s *Server) deleteEnvelope(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}
	envelopeID, err := s.pathID(c, "envelopeID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.budgetService.DeleteEnvelope(trip, envelopeID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Envelope deleted"})
}

func (s *Server) createExpense(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}

	var req models.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	expense, err := s.budgetService.CreateExpense(trip, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (s *Server) updateExpense(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}
	expenseID, err := s.pathID(c, "expenseID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	var req models.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return
	}

	expense, err := s.budgetService.UpdateExpense(trip, expenseID, &req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (s *Server) deleteExpense(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleEditor)
	if !ok {
		return
	}
	expenseID, err := s.pathID(c, "expenseID")
	if err != nil {
		s.handleError(c, err)
		return
	}

	if err := s.budgetService.DeleteExpense(trip, expenseID); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

func (s *Server) tripWeather(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleViewer)
	if !ok {
		return
	}

	slog.Debug("Building trip weather summary", "tripID", trip.ID, "destination", trip.Destination)
	response, err := s.weatherService.GetTripWeather(trip)
	if err != nil {
		slog.Error("Trip weather error", "error", err, "tripID", trip.ID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) tripAlerts(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleViewer)
	if !ok {
		return
	}

	alerts, err := s.weatherService.GetTripAlerts(trip)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) scheduleImpacts(c *gin.Context) {
	trip, ok := s.budgetTrip(c, models.RoleViewer)
	if !ok {
		return
	}

	slog.Debug("Evaluating schedule impacts", "tripID", trip.ID)
	impacts, err := s.weatherService.GetScheduleImpacts(trip)
	if err != nil {
		slog.Error("Schedule impact error", "error", err, "tripID", trip.ID)
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, impacts)
}

// handleError maps application errors onto HTTP statuses
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.AlreadyExistsError:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperrors.ForbiddenError:
			statusCode = http.StatusForbidden
			message = appErr.Message
		case apperrors.TokenError:
			statusCode = http.StatusUnauthorized
			message = appErr.Message
		case apperrors.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case apperrors.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
