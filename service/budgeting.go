package service

import (
	"log"
	"math"
	"strings"

	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/repository"
)

// BudgetService handles envelope allocation and budget reporting
type BudgetService struct {
	budgetRepo BudgetRepositoryInterface
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo BudgetRepositoryInterface) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
	}
}

// AllocationRatios returns suggested category ratios based on price
// sensitivity and trip type. Ratios always normalize to 1.0.
func AllocationRatios(priceSensitivity, tripType string) map[string]float64 {
	base := map[string]float64{"food": 0.3, "activities": 0.3, "transport": 0.2, "flex": 0.2}

	switch strings.ToLower(priceSensitivity) {
	case "frugal":
		base = map[string]float64{"food": 0.25, "activities": 0.25, "transport": 0.25, "flex": 0.25}
	case "treat_yourself":
		base = map[string]float64{"food": 0.32, "activities": 0.36, "transport": 0.16, "flex": 0.16}
	}

	switch strings.ToLower(tripType) {
	case "foodie":
		base["food"] += 0.08
		base["activities"] -= 0.04
		base["flex"] -= 0.04
	case "hiking", "adventurous":
		base["transport"] += 0.05
		base["activities"] += 0.05
		base["food"] -= 0.05
		base["flex"] -= 0.05
	case "chill", "relaxing":
		base["flex"] += 0.05
		base["food"] += 0.03
		base["activities"] -= 0.08
	}

	total := 0.0
	for _, ratio := range base {
		total += ratio
	}
	if total == 0 {
		return base
	}
	for category, ratio := range base {
		base[category] = ratio / total
	}
	return base
}

// AllocateDefaultEnvelopes computes the planned amount per category for a trip
func AllocateDefaultEnvelopes(trip *models.Trip) map[string]float64 {
	ratios := AllocationRatios(trip.PriceSensitivity, trip.TripType)
	planned := make(map[string]float64, len(ratios))
	for category, ratio := range ratios {
		planned[category] = math.Round(trip.TotalBudget*ratio*100) / 100
	}
	return planned
}

// EnsureEnvelopes creates or updates the trip's envelopes to the planned
// amounts, leaving categories outside the plan untouched
func (s *BudgetService) EnsureEnvelopes(trip *models.Trip, planned map[string]float64) error {
	existing, err := s.budgetRepo.ListEnvelopesByTrip(trip.ID)
	if err != nil {
		return err
	}

	byCategory := make(map[string]*models.BudgetEnvelope, len(existing))
	for i := range existing {
		byCategory[existing[i].Category] = &existing[i]
	}

	for category, amount := range planned {
		envelope, ok := byCategory[category]
		if !ok {
			envelope = &models.BudgetEnvelope{
				TripID:        trip.ID,
				Category:      category,
				PlannedAmount: amount,
			}
		} else {
			envelope.PlannedAmount = amount
		}
		if err := s.budgetRepo.SaveEnvelope(envelope); err != nil {
			return err
		}
	}

	return nil
}

// Summary builds the budget overview for a trip
func (s *BudgetService) Summary(trip *models.Trip) (*models.BudgetSummaryResponse, error) {
	log.Printf("[DEBUG] BudgetService.Summary: tripID=%d\n", trip.ID)

	envelopes, err := s.budgetRepo.ListEnvelopesByTrip(trip.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.budgetRepo.ListExpensesByTrip(trip.ID)
	if err != nil {
		return nil, err
	}

	categoryPlanned := map[string]float64{}
	categoryActual := map[string]float64{}
	envelopeCategory := map[uint]string{}

	for _, envelope := range envelopes {
		categoryPlanned[envelope.Category] += envelope.PlannedAmount
		envelopeCategory[envelope.ID] = envelope.Category
	}
	for _, expense := range expenses {
		if expense.EnvelopeID != nil {
			if category, ok := envelopeCategory[*expense.EnvelopeID]; ok {
				categoryActual[category] += expense.Amount
				continue
			}
		}
		categoryActual["uncategorized"] += expense.Amount
	}

	plannedTotal := 0.0
	for _, amount := range categoryPlanned {
		plannedTotal += amount
	}
	actualTotal := 0.0
	for _, amount := range categoryActual {
		actualTotal += amount
	}

	remaining := math.Max(trip.TotalBudget-actualTotal, 0)
	daysLeft := trip.EndDate.Time.Sub(models.Today().Time).Hours()/24 + 1
	if daysLeft < 1 {
		daysLeft = 1
	}
	recommendedDaily := remaining / daysLeft

	summaries := make([]models.EnvelopeSummary, 0, len(envelopes))
	for _, envelope := range envelopes {
		actual := 0.0
		for _, expense := range expenses {
			if expense.EnvelopeID != nil && *expense.EnvelopeID == envelope.ID {
				actual += expense.Amount
			}
		}
		percent := 0.0
		if envelope.PlannedAmount > 0 {
			percent = math.Min(math.Max(actual/envelope.PlannedAmount*100, 0), 100)
		}
		summaries = append(summaries, models.EnvelopeSummary{
			Envelope:    envelope,
			ActualSpent: actual,
			Remaining:   math.Max(envelope.PlannedAmount-actual, 0),
			PercentUsed: percent,
		})
	}

	categories := map[string]models.CategoryTotals{}
	for category := range categoryPlanned {
		categories[category] = models.CategoryTotals{
			PlannedTotal: categoryPlanned[category],
			ActualTotal:  categoryActual[category],
		}
	}
	for category := range categoryActual {
		if _, ok := categories[category]; !ok {
			categories[category] = models.CategoryTotals{ActualTotal: categoryActual[category]}
		}
	}

	return &models.BudgetSummaryResponse{
		Envelopes:             summaries,
		Expenses:              expenses,
		Categories:            categories,
		PlannedTotalAll:       plannedTotal,
		ActualTotalAll:        actualTotal,
		RemainingTotal:        remaining,
		RecommendedDailySpend: recommendedDaily,
	}, nil
}

// SeedEnvelopes writes the default envelope plan for a freshly created trip.
// Trips without a budget get no envelopes until one is set.
func (s *BudgetService) SeedEnvelopes(trip *models.Trip) error {
	if trip.TotalBudget <= 0 {
		return nil
	}
	return s.EnsureEnvelopes(trip, AllocateDefaultEnvelopes(trip))
}

// Recalculate rebuilds the trip's default envelopes from its budget profile
// and returns the refreshed summary
func (s *BudgetService) Recalculate(trip *models.Trip) (*models.BudgetSummaryResponse, error) {
	planned := AllocateDefaultEnvelopes(trip)
	if err := s.EnsureEnvelopes(trip, planned); err != nil {
		return nil, err
	}
	return s.Summary(trip)
}

// CreateEnvelope adds a budget envelope to a trip
func (s *BudgetService) CreateEnvelope(trip *models.Trip, req *models.EnvelopeCreateRequest) (*models.BudgetEnvelope, error) {
	envelope := &models.BudgetEnvelope{
		TripID:        trip.ID,
		Category:      strings.ToLower(req.Category),
		PlannedAmount: req.PlannedAmount,
		Notes:         req.Notes,
	}
	if err := s.budgetRepo.CreateEnvelope(envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// UpdateEnvelope applies a partial envelope update
func (s *BudgetService) UpdateEnvelope(trip *models.Trip, envelopeID uint, req *models.EnvelopeUpdateRequest) (*models.BudgetEnvelope, error) {
	envelope, err := s.envelopeOnTrip(trip, envelopeID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		envelope.Category = strings.ToLower(*req.Category)
	}
	if req.PlannedAmount != nil {
		envelope.PlannedAmount = *req.PlannedAmount
	}
	if req.Notes != nil {
		envelope.Notes = *req.Notes
	}

	if err := s.budgetRepo.SaveEnvelope(envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// DeleteEnvelope removes an envelope from a trip
func (s *BudgetService) DeleteEnvelope(trip *models.Trip, envelopeID uint) error {
	envelope, err := s.envelopeOnTrip(trip, envelopeID)
	if err != nil {
		return err
	}
	return s.budgetRepo.DeleteEnvelope(envelope)
}

// CreateExpense records spend against a trip, optionally tied to an envelope
func (s *BudgetService) CreateExpense(trip *models.Trip, req *models.ExpenseCreateRequest) (*models.Expense, error) {
	if req.EnvelopeID != nil {
		if _, err := s.envelopeOnTrip(trip, *req.EnvelopeID); err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		EnvelopeID:  req.EnvelopeID,
		EventID:     req.EventID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SpentAtDate: req.SpentAtDate,
	}
	if expense.Currency == "" {
		expense.Currency = trip.Currency
	}
	if err := s.budgetRepo.CreateExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense applies a partial expense update
func (s *BudgetService) UpdateExpense(trip *models.Trip, expenseID uint, req *models.ExpenseUpdateRequest) (*models.Expense, error) {
	expense, err := s.expenseOnTrip(trip, expenseID)
	if err != nil {
		return nil, err
	}

	if req.EnvelopeID != nil {
		if _, err := s.envelopeOnTrip(trip, *req.EnvelopeID); err != nil {
			return nil, err
		}
		expense.EnvelopeID = req.EnvelopeID
	}
	if req.EventID != nil {
		expense.EventID = req.EventID
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.SpentAtDate != nil {
		expense.SpentAtDate = *req.SpentAtDate
	}

	if err := s.budgetRepo.SaveExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense from a trip
func (s *BudgetService) DeleteExpense(trip *models.Trip, expenseID uint) error {
	expense, err := s.expenseOnTrip(trip, expenseID)
	if err != nil {
		return err
	}
	return s.budgetRepo.DeleteExpense(expense)
}

func (s *BudgetService) envelopeOnTrip(trip *models.Trip, envelopeID uint) (*models.BudgetEnvelope, error) {
	envelope, err := s.budgetRepo.FindEnvelopeByID(envelopeID)
	if err != nil {
		return nil, err
	}
	if envelope.TripID != trip.ID {
		return nil, apperrors.NewNotFoundError("envelope does not belong to this trip")
	}
	return envelope, nil
}

func (s *BudgetService) expenseOnTrip(trip *models.Trip, expenseID uint) (*models.Expense, error) {
	expense, err := s.budgetRepo.FindExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense.TripID != trip.ID {
		return nil, apperrors.NewNotFoundError("expense does not belong to this trip")
	}
	return expense, nil
}

var _ BudgetRepositoryInterface = (*repository.BudgetRepository)(nil)
