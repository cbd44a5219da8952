// Package models defines data structures used throughout the application
package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip member roles
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Alert severities persisted on weather alerts
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// User represents a registered account
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Trip represents a planned journey with a destination and date range
type Trip struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	OwnerID          uint           `json:"owner_id" gorm:"index;not null"`
	Name             string         `json:"name" gorm:"not null"`
	Destination      string         `json:"destination" gorm:"not null"`
	StartDate        Date           `json:"start_date" gorm:"not null"`
	EndDate          Date           `json:"end_date" gorm:"not null"`
	TotalBudget      float64        `json:"total_budget" gorm:"default:0"`
	Currency         string         `json:"currency" gorm:"default:USD"`
	PartySize        int            `json:"party_size" gorm:"default:1"`
	PriceSensitivity string         `json:"price_sensitivity" gorm:"default:balanced"`
	TripType         string         `json:"trip_type" gorm:"default:balanced"`
	Members          []TripMember   `json:"members,omitempty" gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// TripMember links a user to a trip with a role
type TripMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TripID    uint      `json:"trip_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Role      string    `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location represents a named place, optionally geocoded
type Location struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	Name      string   `json:"name" gorm:"not null"`
	Type      string   `json:"type" gorm:"not null"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// TripDestination orders locations within a trip
type TripDestination struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	TripID     uint     `json:"trip_id" gorm:"index;not null"`
	LocationID uint     `json:"location_id" gorm:"index;not null"`
	SortOrder  int      `json:"sort_order" gorm:"default:0"`
	Location   Location `json:"location" gorm:"foreignKey:LocationID"`
}

// Event represents one itinerary entry on a trip day
type Event struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	TripID          uint           `json:"trip_id" gorm:"index;not null"`
	LocationID      *uint          `json:"location_id,omitempty" gorm:"index"`
	Date            Date           `json:"date" gorm:"not null"`
	StartTime       *string        `json:"start_time,omitempty"`
	EndTime         *string        `json:"end_time,omitempty"`
	Title           string         `json:"title" gorm:"not null"`
	Type            string         `json:"type" gorm:"not null"`
	Cost            *float64       `json:"cost,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	CategoryType    string         `json:"category_type" gorm:"default:other"`
	IsRefundable    bool           `json:"is_refundable" gorm:"default:false"`
	ReservationLink string         `json:"reservation_link,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// BudgetEnvelope is a planned-spend bucket per budget category
type BudgetEnvelope struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	TripID        uint    `json:"trip_id" gorm:"index;not null"`
	Category      string  `json:"category" gorm:"not null"`
	PlannedAmount float64 `json:"planned_amount" gorm:"not null"`
	Notes         string  `json:"notes,omitempty"`
}

// Expense records actual spend, optionally tied to an envelope and event
type Expense struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	TripID      uint    `json:"trip_id" gorm:"index;not null"`
	EnvelopeID  *uint   `json:"envelope_id,omitempty" gorm:"index"`
	EventID     *uint   `json:"event_id,omitempty" gorm:"index"`
	Description string  `json:"description" gorm:"not null"`
	Amount      float64 `json:"amount" gorm:"not null"`
	Currency    string  `json:"currency" gorm:"default:USD"`
	SpentAtDate Date    `json:"spent_at_date" gorm:"not null"`
}

// WeatherAlert is a persisted hazard advisory for one trip day.
//
// Trip-level alerts have a nil EventID and are unique per (trip_id, date).
// Event-level alerts carry the impacted event's ID and are unique per
// (trip_id, date, event_id), so one date can legitimately hold both a
// trip-level row and event rows written by the schedule-impact path.
type WeatherAlert struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	TripID          uint      `json:"trip_id" gorm:"index;not null"`
	Date            Date      `json:"date" gorm:"index;not null"`
	EventID         *uint     `json:"event_id,omitempty" gorm:"index"`
	Severity        string    `json:"severity" gorm:"not null"`
	Summary         string    `json:"summary" gorm:"not null"`
	ProviderPayload JSONMap   `json:"provider_payload,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Token represents a bearer authentication token for a user session
type Token struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
