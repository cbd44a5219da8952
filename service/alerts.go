package service

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"tripplanner.app/config"
	"tripplanner.app/models"
	"tripplanner.app/repository"
)

// AlertService persists weather alerts for trips and events. Trip-level
// alerts are keyed by (trip, date); event-level alerts by (trip, date, event)
// so the two paths never overwrite each other.
type AlertService struct {
	db        *gorm.DB
	alertRepo *repository.AlertRepository
	riskCfg   config.RiskConfig
}

// NewAlertService creates a new alert service
func NewAlertService(db *gorm.DB, alertRepo *repository.AlertRepository, riskCfg config.RiskConfig) *AlertService {
	return &AlertService{
		db:        db,
		alertRepo: alertRepo,
		riskCfg:   riskCfg,
	}
}

// UpsertTripAlerts writes one trip-level alert per forecast day at or above
// the alert threshold, updating rows that already exist for the same date.
// The whole batch commits in a single transaction so a partial failure leaves
// no stray rows.
func (s *AlertService) UpsertTripAlerts(trip *models.Trip, days []models.AnnotatedForecastDay) ([]models.WeatherAlert, error) {
	log.Printf("[DEBUG] AlertService.UpsertTripAlerts: tripID=%d days=%d\n", trip.ID, len(days))

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	repo := s.alertRepo.WithTx(tx)
	alerts := make([]models.WeatherAlert, 0)

	for _, day := range days {
		if day.RiskScore < s.riskCfg.AlertThreshold {
			continue
		}

		alert, err := repo.FindTripAlert(trip.ID, day.Date)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if alert == nil {
			alert = &models.WeatherAlert{
				TripID: trip.ID,
				Date:   day.Date,
			}
		}

		alert.Severity = tripAlertSeverity(day.RiskScore, s.riskCfg.SevereThreshold)
		alert.Summary = tripAlertSummary(day.Summary)
		alert.ProviderPayload = models.JSONMap{
			"risk_score":    day.RiskScore,
			"risk_category": day.RiskCategory,
			"factors":       day.ContributingFactors,
		}

		if err := repo.Save(alert); err != nil {
			tx.Rollback()
			return nil, err
		}
		alerts = append(alerts, *alert)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// UpsertEventAlert records that a specific event sits on a hazardous day,
// carrying the suggested alternate date when one was found
func (s *AlertService) UpsertEventAlert(trip *models.Trip, event *models.Event, day models.AnnotatedForecastDay, suggested *models.Date) (*models.WeatherAlert, error) {
	alert, err := s.alertRepo.FindEventAlert(trip.ID, event.Date, event.ID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		eventID := event.ID
		alert = &models.WeatherAlert{
			TripID:  trip.ID,
			Date:    event.Date,
			EventID: &eventID,
		}
	}

	payload := models.JSONMap{
		"event_id":      event.ID,
		"category":      eventCategory(event),
		"risk_score":    day.RiskScore,
		"risk_category": day.RiskCategory,
		"factors":       day.ContributingFactors,
	}
	if suggested != nil {
		payload["suggested_date"] = suggested.String()
	} else {
		payload["suggested_date"] = nil
	}

	alert.Severity = models.SeverityHigh
	alert.Summary = fmt.Sprintf("Event impacted: %s", event.Title)
	alert.ProviderPayload = payload

	if err := s.alertRepo.Save(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// ListTripAlerts returns every persisted alert for a trip ordered by date
func (s *AlertService) ListTripAlerts(trip *models.Trip) ([]models.WeatherAlert, error) {
	return s.alertRepo.ListByTrip(trip.ID)
}

func tripAlertSeverity(score, severeThreshold int) string {
	if score >= severeThreshold {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

func tripAlertSummary(daySummary string) string {
	if daySummary == "" {
		return "Unsafe conditions"
	}
	return fmt.Sprintf("High risk: %s", daySummary)
}

func eventCategory(event *models.Event) string {
	category := strings.ToLower(strings.TrimSpace(event.CategoryType))
	if category == "" {
		return "other"
	}
	return category
}
