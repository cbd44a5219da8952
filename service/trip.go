package service

import (
	"log"

	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
)

// roleRank orders trip roles by privilege for access checks
var roleRank = map[string]int{
	models.RoleViewer: 1,
	models.RoleEditor: 2,
	models.RoleOwner:  3,
}

// TripService handles trip lifecycle, membership, destinations, and events
type TripService struct {
	tripRepo        TripRepositoryInterface
	eventRepo       EventRepositoryInterface
	destinationRepo DestinationRepositoryInterface
	userRepo        UserRepositoryInterface
}

// NewTripService creates a new trip service
func NewTripService(
	tripRepo TripRepositoryInterface,
	eventRepo EventRepositoryInterface,
	destinationRepo DestinationRepositoryInterface,
	userRepo UserRepositoryInterface,
) *TripService {
	return &TripService{
		tripRepo:        tripRepo,
		eventRepo:       eventRepo,
		destinationRepo: destinationRepo,
		userRepo:        userRepo,
	}
}

// Authorize loads a trip and verifies the user holds at least minRole on it.
// The trip owner implicitly holds the owner role without a member row.
func (s *TripService) Authorize(tripID, userID uint, minRole string) (*models.Trip, error) {
	trip, err := s.tripRepo.FindByID(tripID)
	if err != nil {
		return nil, err
	}

	role, err := s.roleFor(trip, userID)
	if err != nil {
		return nil, err
	}
	if roleRank[role] < roleRank[minRole] {
		return nil, apperrors.NewForbiddenError("insufficient role for this trip")
	}
	return trip, nil
}

func (s *TripService) roleFor(trip *models.Trip, userID uint) (string, error) {
	if trip.OwnerID == userID {
		return models.RoleOwner, nil
	}
	member, err := s.tripRepo.FindMember(trip.ID, userID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", apperrors.NewForbiddenError("you are not a member of this trip")
	}
	return member.Role, nil
}

// CreateTrip creates a trip owned by the given user
func (s *TripService) CreateTrip(userID uint, req *models.TripCreateRequest) (*models.Trip, error) {
	log.Printf("[DEBUG] TripService.CreateTrip: userID=%d name=%s\n", userID, req.Name)

	if req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationError("end date must not precede start date")
	}

	trip := &models.Trip{
		OwnerID:          userID,
		Name:             req.Name,
		Destination:      req.Destination,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TotalBudget:      req.TotalBudget,
		Currency:         req.Currency,
		PartySize:        req.PartySize,
		PriceSensitivity: req.PriceSensitivity,
		TripType:         req.TripType,
	}
	if trip.Currency == "" {
		trip.Currency = "USD"
	}
	if trip.PartySize < 1 {
		trip.PartySize = 1
	}
	if trip.PriceSensitivity == "" {
		trip.PriceSensitivity = "balanced"
	}
	if trip.TripType == "" {
		trip.TripType = "balanced"
	}

	if err := s.tripRepo.Create(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns every trip the user owns or belongs to
func (s *TripService) ListTrips(userID uint) ([]models.Trip, error) {
	return s.tripRepo.ListForUser(userID)
}

// GetTrip returns a trip the user can at least view
func (s *TripService) GetTrip(tripID, userID uint) (*models.Trip, error) {
	return s.Authorize(tripID, userID, models.RoleViewer)
}

// UpdateTrip applies a partial update. Owner only.
func (s *TripService) UpdateTrip(tripID, userID uint, req *models.TripUpdateRequest) (*models.Trip, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleOwner)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.TotalBudget != nil {
		trip.TotalBudget = *req.TotalBudget
	}
	if req.Currency != nil {
		trip.Currency = *req.Currency
	}
	if req.PartySize != nil {
		trip.PartySize = *req.PartySize
	}
	if req.PriceSensitivity != nil {
		trip.PriceSensitivity = *req.PriceSensitivity
	}
	if req.TripType != nil {
		trip.TripType = *req.TripType
	}

	if trip.EndDate.Before(trip.StartDate) {
		return nil, apperrors.NewValidationError("end date must not precede start date")
	}

	if err := s.tripRepo.Update(trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes a trip. Owner only.
func (s *TripService) DeleteTrip(tripID, userID uint) error {
	trip, err := s.Authorize(tripID, userID, models.RoleOwner)
	if err != nil {
		return err
	}
	return s.tripRepo.Delete(trip)
}

// ListMembers returns a trip's member rows. Any member may look.
func (s *TripService) ListMembers(tripID, userID uint) ([]models.TripMember, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleViewer)
	if err != nil {
		return nil, err
	}
	return s.tripRepo.ListMembers(trip.ID)
}

// UpsertMember adds a user to a trip or changes their role. Owner only; the
// owner's own access cannot be granted or downgraded through membership.
func (s *TripService) UpsertMember(tripID, userID uint, req *models.MemberUpsertRequest) (*models.TripMember, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	if req.UserID == trip.OwnerID {
		return nil, apperrors.NewValidationError("the trip owner cannot be added as a member")
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, err
	}

	member, err := s.tripRepo.FindMember(trip.ID, req.UserID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		member = &models.TripMember{
			TripID: trip.ID,
			UserID: req.UserID,
		}
	}
	member.Role = req.Role

	if err := s.tripRepo.SaveMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember drops a user from a trip. Owner only.
func (s *TripService) RemoveMember(tripID, userID, memberUserID uint) error {
	trip, err := s.Authorize(tripID, userID, models.RoleOwner)
	if err != nil {
		return err
	}

	member, err := s.tripRepo.FindMember(trip.ID, memberUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperrors.NewNotFoundError("member not found on this trip")
	}
	return s.tripRepo.DeleteMember(member)
}

// AddDestination attaches a location to a trip. Editor or above.
func (s *TripService) AddDestination(tripID, userID uint, req *models.DestinationCreateRequest) (*models.TripDestination, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	location := &models.Location{
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.destinationRepo.CreateLocation(location); err != nil {
		return nil, err
	}

	destination := &models.TripDestination{
		TripID:     trip.ID,
		LocationID: location.ID,
		SortOrder:  req.SortOrder,
		Location:   *location,
	}
	if err := s.destinationRepo.CreateDestination(destination); err != nil {
		return nil, err
	}
	return destination, nil
}

// ListDestinations returns a trip's destinations ordered by sort order
func (s *TripService) ListDestinations(tripID, userID uint) ([]models.TripDestination, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleViewer)
	if err != nil {
		return nil, err
	}
	return s.destinationRepo.ListByTrip(trip.ID)
}

// RemoveDestination detaches a location from a trip. Editor or above.
func (s *TripService) RemoveDestination(tripID, userID, destinationID uint) error {
	trip, err := s.Authorize(tripID, userID, models.RoleEditor)
	if err != nil {
		return err
	}

	destination, err := s.destinationRepo.FindDestinationByID(destinationID)
	if err != nil {
		return err
	}
	if destination.TripID != trip.ID {
		return apperrors.NewNotFoundError("destination does not belong to this trip")
	}
	return s.destinationRepo.DeleteDestination(destination)
}

// CreateEvent adds an itinerary event. Editor or above; the event date must
// fall inside the trip's range.
func (s *TripService) CreateEvent(tripID, userID uint, req *models.EventCreateRequest) (*models.Event, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleEditor)
	if err != nil {
		return nil, err
	}
	if !req.Date.Within(trip.StartDate, trip.EndDate) {
		return nil, apperrors.NewValidationError("event date falls outside the trip's date range")
	}

	event := &models.Event{
		TripID:          trip.ID,
		LocationID:      req.LocationID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Title:           req.Title,
		Type:            req.Type,
		Cost:            req.Cost,
		Notes:           req.Notes,
		CategoryType:    req.CategoryType,
		IsRefundable:    req.IsRefundable,
		ReservationLink: req.ReservationLink,
	}
	if event.CategoryType == "" {
		event.CategoryType = "other"
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListEvents returns a trip's events ordered by date and start time
func (s *TripService) ListEvents(tripID, userID uint) ([]models.Event, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleViewer)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListByTrip(trip.ID)
}

// UpdateEvent applies a partial event update. Editor or above.
func (s *TripService) UpdateEvent(tripID, userID, eventID uint, req *models.EventUpdateRequest) (*models.Event, error) {
	trip, err := s.Authorize(tripID, userID, models.RoleEditor)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if event.TripID != trip.ID {
		return nil, apperrors.NewNotFoundError("event does not belong to this trip")
	}

	if req.LocationID != nil {
		event.LocationID = req.LocationID
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.StartTime != nil {
		event.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Type != nil {
		event.Type = *req.Type
	}
	if req.Cost != nil {
		event.Cost = req.Cost
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.CategoryType != nil {
		event.CategoryType = *req.CategoryType
	}
	if req.IsRefundable != nil {
		event.IsRefundable = *req.IsRefundable
	}
	if req.ReservationLink != nil {
		event.ReservationLink = *req.ReservationLink
	}

	if !event.Date.Within(trip.StartDate, trip.EndDate) {
		return nil, apperrors.NewValidationError("event date falls outside the trip's date range")
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an itinerary event. Editor or above.
func (s *TripService) DeleteEvent(tripID, userID, eventID uint) error {
	trip, err := s.Authorize(tripID, userID, models.RoleEditor)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		return err
	}
	if event.TripID != trip.ID {
		return apperrors.NewNotFoundError("event does not belong to this trip")
	}
	return s.eventRepo.Delete(event)
}
