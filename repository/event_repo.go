package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// EventRepository handles data access operations for itinerary events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new repository for event data
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new event
func (r *EventRepository) Create(event *models.Event) error {
	log.Printf("[DEBUG] EventRepository.Create: tripID=%d, title=%s, date=%s\n", event.TripID, event.Title, event.Date)

	result := r.db.Create(event)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating event: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create event", result.Error)
	}

	return nil
}

// FindByID retrieves an event by its ID
func (r *EventRepository) FindByID(id uint) (*models.Event, error) {
	var event models.Event
	result := r.db.First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("event not found")
		}
		log.Printf("[ERROR] Database error when finding event by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find event", result.Error)
	}

	return &event, nil
}

// ListByTrip retrieves all events of a trip ordered by date then start time
func (r *EventRepository) ListByTrip(tripID uint) ([]models.Event, error) {
	var events []models.Event
	result := r.db.Where("trip_id = ?", tripID).Order("date, start_time").Find(&events)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing events: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list events", result.Error)
	}

	return events, nil
}

// Update modifies an existing event
func (r *EventRepository) Update(event *models.Event) error {
	result := r.db.Save(event)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating event: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to update event", result.Error)
	}

	return nil
}

// Delete removes an event from the database
func (r *EventRepository) Delete(event *models.Event) error {
	result := r.db.Delete(event)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting event: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete event", result.Error)
	}

	return nil
}
