// Package scheduler implements background job scheduling
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"
	"tripplanner.app/config"
	"tripplanner.app/models"
	"tripplanner.app/repository"
	"tripplanner.app/service"
)

// Scheduler manages periodic tasks: refreshing weather alerts for upcoming
// trips and pruning expired auth tokens
type Scheduler struct {
	db             *gorm.DB
	config         *config.Config
	tripRepo       *repository.TripRepository
	tokenRepo      *repository.TokenRepository
	weatherService service.WeatherServiceInterface
}

// NewScheduler creates and configures a new task scheduler
func NewScheduler(db *gorm.DB, config *config.Config, weatherService service.WeatherServiceInterface) *Scheduler {
	return &Scheduler{
		db:             db,
		config:         config,
		tripRepo:       repository.NewTripRepository(db),
		tokenRepo:      repository.NewTokenRepository(db),
		weatherService: weatherService,
	}
}

// Start begins the scheduler's operations
func (s *Scheduler) Start() {
	go s.scheduleInterval(time.Duration(s.config.Scheduler.AlertRefreshInterval)*time.Minute, s.refreshUpcomingTripAlerts)
	go s.scheduleInterval(time.Duration(s.config.Scheduler.TokenCleanupInterval)*time.Minute, s.cleanupExpiredTokens)
}

func (s *Scheduler) scheduleInterval(interval time.Duration, job func()) {
	job()

	ticker := time.NewTicker(interval)
	for range ticker.C {
		job()
	}
}

// refreshUpcomingTripAlerts re-runs the alert pipeline for every trip that
// overlaps the configured horizon. A failing trip is logged and skipped so
// one bad destination cannot stall the rest.
func (s *Scheduler) refreshUpcomingTripAlerts() {
	from := models.Today()
	to := from.AddDays(s.config.Scheduler.AlertRefreshHorizonDays)

	trips, err := s.tripRepo.ListInDateWindow(from, to)
	if err != nil {
		log.Printf("[ERROR] listing trips for alert refresh: %v\n", err)
		return
	}

	log.Printf("[DEBUG] refreshing alerts for %d upcoming trips\n", len(trips))
	for i := range trips {
		if err := s.weatherService.RefreshTripAlerts(&trips[i]); err != nil {
			log.Printf("[ERROR] refreshing alerts for trip %d: %v\n", trips[i].ID, err)
		}
	}
}

func (s *Scheduler) cleanupExpiredTokens() {
	if err := s.tokenRepo.DeleteExpiredTokens(); err != nil {
		log.Printf("Error cleaning up expired tokens: %v\n", err)
	}
}
