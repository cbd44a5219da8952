package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// BudgetRepository handles data access for envelopes and expenses
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new repository for budget data
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// CreateEnvelope persists a new budget envelope
func (r *BudgetRepository) CreateEnvelope(envelope *models.BudgetEnvelope) error {
	result := r.db.Create(envelope)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating envelope: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create envelope", result.Error)
	}

	return nil
}

// FindEnvelopeByID retrieves an envelope by its ID
func (r *BudgetRepository) FindEnvelopeByID(id uint) (*models.BudgetEnvelope, error) {
	var envelope models.BudgetEnvelope
	result := r.db.First(&envelope, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("budget envelope not found")
		}
		log.Printf("[ERROR] Database error when finding envelope by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find envelope", result.Error)
	}

	return &envelope, nil
}

// ListEnvelopesByTrip retrieves all envelopes of a trip
func (r *BudgetRepository) ListEnvelopesByTrip(tripID uint) ([]models.BudgetEnvelope, error) {
	var envelopes []models.BudgetEnvelope
	result := r.db.Where("trip_id = ?", tripID).Find(&envelopes)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing envelopes: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list envelopes", result.Error)
	}

	return envelopes, nil
}

// SaveEnvelope creates or updates an envelope
func (r *BudgetRepository) SaveEnvelope(envelope *models.BudgetEnvelope) error {
	result := r.db.Save(envelope)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when saving envelope: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to save envelope", result.Error)
	}

	return nil
}

// DeleteEnvelope removes an envelope
func (r *BudgetRepository) DeleteEnvelope(envelope *models.BudgetEnvelope) error {
	result := r.db.Delete(envelope)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting envelope: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete envelope", result.Error)
	}

	return nil
}

// CreateExpense persists a new expense
func (r *BudgetRepository) CreateExpense(expense *models.Expense) error {
	result := r.db.Create(expense)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when creating expense: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to create expense", result.Error)
	}

	return nil
}

// FindExpenseByID retrieves an expense by its ID
func (r *BudgetRepository) FindExpenseByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	result := r.db.First(&expense, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("expense not found")
		}
		log.Printf("[ERROR] Database error when finding expense by ID: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to find expense", result.Error)
	}

	return &expense, nil
}

// ListExpensesByTrip retrieves all expenses of a trip
func (r *BudgetRepository) ListExpensesByTrip(tripID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Where("trip_id = ?", tripID).Find(&expenses)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when listing expenses: %v\n", result.Error)
		return nil, apperrors.NewDatabaseError("failed to list expenses", result.Error)
	}

	return expenses, nil
}

// SaveExpense creates or updates an expense
func (r *BudgetRepository) SaveExpense(expense *models.Expense) error {
	result := r.db.Save(expense)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when saving expense: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to save expense", result.Error)
	}

	return nil
}

// DeleteExpense removes an expense
func (r *BudgetRepository) DeleteExpense(expense *models.Expense) error {
	result := r.db.Delete(expense)
	if result.Error != nil {
		log.Printf("[ERROR] Database error when deleting expense: %v\n", result.Error)
		return apperrors.NewDatabaseError("failed to delete expense", result.Error)
	}

	return nil
}
