package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// TripRepository handles data access operations for trips and memberships
type TripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new repository for trip data
func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create persists a new trip
func (r *TripRepository) Create(trip *models.Trip) error {
	log.Printf("[DEBUG] TripRepository.Create: name=%s, destination=%s\n", trip.Name, trip.Destination)

	result := r.db.Create(trip)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating trip: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create trip", result.Error)
	}

	return nil
}

// FindByID retrieves a trip with its members preloaded
func (r *TripRepository) FindByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	result := r.db.Preload("Members").First(&trip, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("trip not found")
		}
		log.Printf("[ERROR] Database error when finding trip by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find trip", result.Error)
	}

	return &trip, nil
}

// ListForUser retrieves all trips a user owns or belongs to
func (r *TripRepository) ListForUser(userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	result := r.db.
		Joins("LEFT JOIN trip_members ON trip_members.trip_id = trips.id").
		Where("trips.owner_id = ? OR trip_members.user_id = ?", userID, userID).
		Distinct().
		Preload("Members").
		Find(&trips)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing trips for user: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list trips", result.Error)
	}

	return trips, nil
}

// ListInDateWindow retrieves trips overlapping [from, to], used by the
// background alert refresh
func (r *TripRepository) ListInDateWindow(from, to models.Date) ([]models.Trip, error) {
	var trips []models.Trip
	result := r.db.
		Where("end_date >= ? AND start_date <= ?", from, to).
		Find(&trips)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing trips in date window: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list trips", result.Error)
	}

	return trips, nil
}

// Update modifies an existing trip
func (r *TripRepository) Update(trip *models.Trip) error {
	result := r.db.Save(trip)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when updating trip: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to update trip", result.Error)
	}

	return nil
}

// Delete removes a trip from the database
func (r *TripRepository) Delete(trip *models.Trip) error {
	result := r.db.Delete(trip)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting trip: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete trip", result.Error)
	}

	return nil
}

// FindMember retrieves a membership row; returns nil without error when absent
func (r *TripRepository) FindMember(tripID, userID uint) (*models.TripMember, error) {
	var member models.TripMember
	result := r.db.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding trip member: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find trip member", result.Error)
	}

	return &member, nil
}

// ListMembers retrieves all members of a trip
func (r *TripRepository) ListMembers(tripID uint) ([]models.TripMember, error) {
	var members []models.TripMember
	result := r.db.Where("trip_id = ?", tripID).Find(&members)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing trip members: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list trip members", result.Error)
	}

	return members, nil
}

// SaveMember creates or updates a membership row
func (r *TripRepository) SaveMember(member *models.TripMember) error {
	result := r.db.Save(member)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when saving trip member: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to save trip member", result.Error)
	}

	return nil
}

// DeleteMember removes a membership row
func (r *TripRepository) DeleteMember(member *models.TripMember) error {
	result := r.db.Delete(member)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting trip member: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete trip member", result.Error)
	}

	return nil
}
