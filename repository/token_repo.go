package repository

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// TokenRepository handles data access operations for bearer tokens
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new repository for token operations
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateToken generates and stores a new bearer token for a user
func (r *TokenRepository) CreateToken(userID uint, expiresIn time.Duration) (*models.Token, error) {
	log.Printf("[DEBUG] TokenRepository.CreateToken: userID=%d, expiresIn=%v\n", userID, expiresIn)

	token := &models.Token{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(expiresIn),
	}

	result := r.db.Create(token)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating token: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to create token", result.Error)
	}

	return token, nil
}

// FindValidToken retrieves an unexpired token by its string value
func (r *TokenRepository) FindValidToken(tokenStr string) (*models.Token, error) {
	if tokenStr == "" {
		return nil, apperrors.NewValidationError("token cannot be empty")
	}

	var token models.Token
	result := r.db.Where("token = ? AND expires_at > ?", tokenStr, time.Now()).First(&token)
	if result.Error != nil {
		return nil, apperrors.NewTokenError("token not found or expired")
	}

	return &token, nil
}

// DeleteToken removes a token from the database
func (r *TokenRepository) DeleteToken(token *models.Token) error {
	result := r.db.Delete(token)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting token: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete token", result.Error)
	}

	return nil
}

// DeleteExpiredTokens removes all expired tokens from the database
func (r *TokenRepository) DeleteExpiredTokens() error {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.Token{})
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting expired tokens: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete expired tokens", result.Error)
	}

	log.Printf("[DEBUG] Deleted %d expired tokens\n", result.RowsAffected)
	return nil
}
