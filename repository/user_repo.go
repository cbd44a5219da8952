// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// UserRepository handles data access operations for user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository for user data
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user account
func (r *UserRepository) Create(user *models.User) error {
	log.Printf("[DEBUG] UserRepository.Create: email=%s, username=%s\n", user.Email, user.Username)

	result := r.db.Create(user)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating user: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create user", result.Error)
	}

	return nil
}

// FindByEmail retrieves a user by email; returns nil without error when absent
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email cannot be empty")
	}

	var user models.User
	result := r.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user by email: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find user", result.Error)
	}

	return &user, nil
}

// FindByUsername retrieves a user by username; returns nil without error when absent
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	if username == "" {
		return nil, apperrors.NewValidationError("username cannot be empty")
	}

	var user models.User
	result := r.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("[ERROR] Database error when finding user by username: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find user", result.Error)
	}

	return &user, nil
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		log.Printf("[ERROR] Database error when finding user by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find user", result.Error)
	}

	return &user, nil
}
