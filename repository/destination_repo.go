package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// DestinationRepository handles data access for locations and trip destinations
type DestinationRepository struct {
	db *gorm.DB
}

// NewDestinationRepository creates a new repository for destination data
func NewDestinationRepository(db *gorm.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// CreateLocation persists a new location
func (r *DestinationRepository) CreateLocation(location *models.Location) error {
	result := r.db.Create(location)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating location: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create location", result.Error)
	}

	return nil
}

// CreateDestination attaches a location to a trip
func (r *DestinationRepository) CreateDestination(destination *models.TripDestination) error {
	result := r.db.Create(destination)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating trip destination: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create trip destination", result.Error)
	}

	return nil
}

// FindDestinationByID retrieves a trip destination with its location preloaded
func (r *DestinationRepository) FindDestinationByID(id uint) (*models.TripDestination, error) {
	var destination models.TripDestination
	result := r.db.Preload("Location").First(&destination, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("destination not found")
		}
		log.Printf("[ERROR] Database error when finding destination by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find destination", result.Error)
	}

	return &destination, nil
}

// ListByTrip retrieves a trip's destinations ordered by sort order
func (r *DestinationRepository) ListByTrip(tripID uint) ([]models.TripDestination, error) {
	var destinations []models.TripDestination
	result := r.db.Where("trip_id = ?", tripID).Order("sort_order").Preload("Location").Find(&destinations)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing destinations: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list destinations", result.Error)
	}

	return destinations, nil
}

// DeleteDestination detaches a destination from its trip
func (r *DestinationRepository) DeleteDestination(destination *models.TripDestination) error {
	result := r.db.Delete(destination)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting destination: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete destination", result.Error)
	}

	return nil
}
