// Package app wires configuration, storage, services, and transports into a
// runnable application
package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"tripplanner.app/api"
	"tripplanner.app/config"
	"tripplanner.app/database"
	"tripplanner.app/providers"
	"tripplanner.app/repository"
	"tripplanner.app/scheduler"
	"tripplanner.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	db        *gorm.DB
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	forecastProvider, err := providers.NewForecastProviderChain(app.config)
	if err != nil {
		return fmt.Errorf("create forecast provider chain: %w", err)
	}
	geocoder := providers.NewOpenMeteoGeocoder(&app.config.Forecast)

	userRepo := repository.NewUserRepository(app.db)
	tokenRepo := repository.NewTokenRepository(app.db)
	tripRepo := repository.NewTripRepository(app.db)
	eventRepo := repository.NewEventRepository(app.db)
	destinationRepo := repository.NewDestinationRepository(app.db)
	budgetRepo := repository.NewBudgetRepository(app.db)
	alertRepo := repository.NewAlertRepository(app.db)

	authService := service.NewAuthService(userRepo, tokenRepo, app.config.Auth)
	tripService := service.NewTripService(tripRepo, eventRepo, destinationRepo, userRepo)
	budgetService := service.NewBudgetService(budgetRepo)

	alertService := service.NewAlertService(app.db, alertRepo, app.config.Risk)
	impactService := service.NewImpactService(alertService, app.config.Risk)
	weatherService := service.NewWeatherService(geocoder, forecastProvider, alertService, impactService, eventRepo)

	app.server = api.NewServer(
		app.db,
		app.config,
		authService,
		tripService,
		budgetService,
		weatherService,
	)
	app.scheduler = scheduler.NewScheduler(app.db, app.config, weatherService)

	slog.Info("Services initialized successfully")
	return nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	if app.config.Scheduler.Enabled {
		slog.Info("Starting scheduler...")
		app.scheduler.Start()
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
