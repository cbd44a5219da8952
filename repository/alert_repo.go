package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// AlertRepository handles data access operations for weather alerts.
//
// Trip-level alerts are keyed by (trip_id, date) with a null event_id;
// event-level alerts by (trip_id, date, event_id). The engine only ever
// updates alerts in place, it never deletes them.
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new repository for weather alert data
func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle
func (r *AlertRepository) WithTx(tx *gorm.DB) *AlertRepository {
	return &AlertRepository{db: tx}
}

// FindTripAlert retrieves the trip-level alert for one trip day; returns nil
// without error when absent
func (r *AlertRepository) FindTripAlert(tripID uint, date models.Date) (*models.WeatherAlert, error) {
	var alert models.WeatherAlert
	result := r.db.Where("trip_id = ? AND date = ? AND event_id IS NULL", tripID, date).First(&alert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding trip alert: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find trip alert", result.Error)
	}

	return &alert, nil
}

// FindEventAlert retrieves the alert recorded for one event on one date;
// returns nil without error when absent
func (r *AlertRepository) FindEventAlert(tripID uint, date models.Date, eventID uint) (*models.WeatherAlert, error) {
	var alert models.WeatherAlert
	result := r.db.Where("trip_id = ? AND date = ? AND event_id = ?", tripID, date, eventID).First(&alert)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding event alert: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find event alert", result.Error)
	}

	return &alert, nil
}

// ListByTrip retrieves all alerts of a trip ordered by date
func (r *AlertRepository) ListByTrip(tripID uint) ([]models.WeatherAlert, error) {
	var alerts []models.WeatherAlert
	result := r.db.Where("trip_id = ?", tripID).Order("date").Find(&alerts)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing alerts: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list alerts", result.Error)
	}

	return alerts, nil
}

// Save creates or updates an alert row
func (r *AlertRepository) Save(alert *models.WeatherAlert) error {
	result := r.db.Save(alert)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when saving alert: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to save alert", result.Error)
	}

	return nil
}
