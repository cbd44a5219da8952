package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	apperrors "tripplanner.app/errors"
	"tripplanner.app/models"
	"tripplanner.app/repository"
)

func newTripService(db *gorm.DB) *TripService {
	return NewTripService(
		repository.NewTripRepository(db),
		repository.NewEventRepository(db),
		repository.NewDestinationRepository(db),
		repository.NewUserRepository(db),
	)
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ForbiddenError, appErr.Type)
}

func TestTripService_CreateTrip_Defaults(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})

	require.NoError(t, err)
	assert.Equal(t, owner.ID, trip.OwnerID)
	assert.Equal(t, "USD", trip.Currency)
	assert.Equal(t, 1, trip.PartySize)
	assert.Equal(t, "balanced", trip.PriceSensitivity)
	assert.Equal(t, "balanced", trip.TripType)
}

func TestTripService_CreateTrip_InvertedDatesRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	_, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Backwards",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 7),
		EndDate:     models.NewDate(2025, 7, 1),
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestTripService_Authorize_Roles(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	editor := seedUser(t, db, "editor@example.com", "editor")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")
	stranger := seedUser(t, db, "stranger@example.com", "stranger")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)

	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: editor.ID, Role: models.RoleEditor})
	require.NoError(t, err)
	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: viewer.ID, Role: models.RoleViewer})
	require.NoError(t, err)

	// Owner passes every level without a member row
	_, err = svc.Authorize(trip.ID, owner.ID, models.RoleOwner)
	assert.NoError(t, err)

	// Editor can edit but not act as owner
	_, err = svc.Authorize(trip.ID, editor.ID, models.RoleEditor)
	assert.NoError(t, err)
	_, err = svc.Authorize(trip.ID, editor.ID, models.RoleOwner)
	assertForbidden(t, err)

	// Viewer can only view
	_, err = svc.Authorize(trip.ID, viewer.ID, models.RoleViewer)
	assert.NoError(t, err)
	_, err = svc.Authorize(trip.ID, viewer.ID, models.RoleEditor)
	assertForbidden(t, err)

	// Non-members see nothing
	_, err = svc.Authorize(trip.ID, stranger.ID, models.RoleViewer)
	assertForbidden(t, err)
}

func TestTripService_ListTrips_IncludesMemberships(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	member := seedUser(t, db, "member@example.com", "member")

	owned, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Owned",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)
	_, err = svc.UpsertMember(owned.ID, owner.ID, &models.MemberUpsertRequest{UserID: member.ID, Role: models.RoleViewer})
	require.NoError(t, err)

	_, err = svc.CreateTrip(member.ID, &models.TripCreateRequest{
		Name:        "Mine",
		Destination: "Porto",
		StartDate:   models.NewDate(2025, 8, 1),
		EndDate:     models.NewDate(2025, 8, 5),
	})
	require.NoError(t, err)

	trips, err := svc.ListTrips(member.ID)
	require.NoError(t, err)
	assert.Len(t, trips, 2)

	trips, err = svc.ListTrips(owner.ID)
	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestTripService_UpsertMember_OwnerCannotBeMember(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)

	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: owner.ID, Role: models.RoleEditor})
	require.Error(t, err)
}

func TestTripService_Events_EditorCanWrite(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	editor := seedUser(t, db, "editor@example.com", "editor")
	viewer := seedUser(t, db, "viewer@example.com", "viewer")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)
	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: editor.ID, Role: models.RoleEditor})
	require.NoError(t, err)
	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: viewer.ID, Role: models.RoleViewer})
	require.NoError(t, err)

	event, err := svc.CreateEvent(trip.ID, editor.ID, &models.EventCreateRequest{
		Date:         models.NewDate(2025, 7, 2),
		Title:        "Boat tour",
		Type:         "activity",
		CategoryType: "water",
	})
	require.NoError(t, err)
	assert.Equal(t, "water", event.CategoryType)

	_, err = svc.CreateEvent(trip.ID, viewer.ID, &models.EventCreateRequest{
		Date:  models.NewDate(2025, 7, 2),
		Title: "Sneaky",
		Type:  "activity",
	})
	assertForbidden(t, err)

	newTitle := "Sunset boat tour"
	updated, err := svc.UpdateEvent(trip.ID, editor.ID, event.ID, &models.EventUpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Sunset boat tour", updated.Title)

	require.NoError(t, svc.DeleteEvent(trip.ID, editor.ID, event.ID))
}

func TestTripService_CreateEvent_OutsideTripRangeRejected(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)

	_, err = svc.CreateEvent(trip.ID, owner.ID, &models.EventCreateRequest{
		Date:  models.NewDate(2025, 7, 20),
		Title: "Too late",
		Type:  "activity",
	})

	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ValidationError, appErr.Type)
}

func TestTripService_Destinations(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)

	lat, lon := 38.7223, -9.1393
	destination, err := svc.AddDestination(trip.ID, owner.ID, &models.DestinationCreateRequest{
		Name:      "Belem Tower",
		Type:      "landmark",
		Latitude:  &lat,
		Longitude: &lon,
		SortOrder: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Belem Tower", destination.Location.Name)

	destinations, err := svc.ListDestinations(trip.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, destinations, 1)

	require.NoError(t, svc.RemoveDestination(trip.ID, owner.ID, destination.ID))

	destinations, err = svc.ListDestinations(trip.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, destinations)
}

func TestTripService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newTripService(db)
	owner := seedUser(t, db, "owner@example.com", "owner")
	editor := seedUser(t, db, "editor@example.com", "editor")

	trip, err := svc.CreateTrip(owner.ID, &models.TripCreateRequest{
		Name:        "Summer trip",
		Destination: "Lisbon",
		StartDate:   models.NewDate(2025, 7, 1),
		EndDate:     models.NewDate(2025, 7, 7),
	})
	require.NoError(t, err)
	_, err = svc.UpsertMember(trip.ID, owner.ID, &models.MemberUpsertRequest{UserID: editor.ID, Role: models.RoleEditor})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.UpdateTrip(trip.ID, editor.ID, &models.TripUpdateRequest{Name: &name})
	assertForbidden(t, err)

	updated, err := svc.UpdateTrip(trip.ID, owner.ID, &models.TripUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	assertForbidden(t, svc.DeleteTrip(trip.ID, editor.ID))
	require.NoError(t, svc.DeleteTrip(trip.ID, owner.ID))

	_, err = svc.GetTrip(trip.ID, owner.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}
