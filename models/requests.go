package models

// RegisterRequest represents data required to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents account credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TripCreateRequest represents data required to create a trip
type TripCreateRequest struct {
	Name             string  `json:"name" binding:"required"`
	Destination      string  `json:"destination" binding:"required"`
	StartDate        Date    `json:"start_date" binding:"required"`
	EndDate          Date    `json:"end_date" binding:"required"`
	TotalBudget      float64 `json:"total_budget"`
	Currency         string  `json:"currency"`
	PartySize        int     `json:"party_size"`
	PriceSensitivity string  `json:"price_sensitivity"`
	TripType         string  `json:"trip_type"`
}

// TripUpdateRequest represents a partial trip update
type TripUpdateRequest struct {
	Name             *string  `json:"name"`
	Destination      *string  `json:"destination"`
	StartDate        *Date    `json:"start_date"`
	EndDate          *Date    `json:"end_date"`
	TotalBudget      *float64 `json:"total_budget"`
	Currency         *string  `json:"currency"`
	PartySize        *int     `json:"party_size"`
	PriceSensitivity *string  `json:"price_sensitivity"`
	TripType         *string  `json:"trip_type"`
}

// MemberUpsertRequest adds or updates a trip member
type MemberUpsertRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=editor viewer"`
}

// DestinationCreateRequest attaches a location to a trip
type DestinationCreateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	SortOrder int      `json:"sort_order"`
}

// EventCreateRequest represents data required to create an itinerary event
type EventCreateRequest struct {
	LocationID      *uint    `json:"location_id"`
	Date            Date     `json:"date" binding:"required"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	Title           string   `json:"title" binding:"required"`
	Type            string   `json:"type" binding:"required"`
	Cost            *float64 `json:"cost"`
	Notes           string   `json:"notes"`
	CategoryType    string   `json:"category_type"`
	IsRefundable    bool     `json:"is_refundable"`
	ReservationLink string   `json:"reservation_link"`
}

// EventUpdateRequest represents a partial event update
type EventUpdateRequest struct {
	LocationID      *uint    `json:"location_id"`
	Date            *Date    `json:"date"`
	StartTime       *string  `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	Title           *string  `json:"title"`
	Type            *string  `json:"type"`
	Cost            *float64 `json:"cost"`
	Notes           *string  `json:"notes"`
	CategoryType    *string  `json:"category_type"`
	IsRefundable    *bool    `json:"is_refundable"`
	ReservationLink *string  `json:"reservation_link"`
}

// EnvelopeCreateRequest creates a budget envelope on a trip
type EnvelopeCreateRequest struct {
	Category      string  `json:"category" binding:"required"`
	PlannedAmount float64 `json:"planned_amount" binding:"required"`
	Notes         string  `json:"notes"`
}

// EnvelopeUpdateRequest represents a partial envelope update
type EnvelopeUpdateRequest struct {
	Category      *string  `json:"category"`
	PlannedAmount *float64 `json:"planned_amount"`
	Notes         *string  `json:"notes"`
}

// ExpenseCreateRequest records spend against a trip
type ExpenseCreateRequest struct {
	EnvelopeID  *uint   `json:"envelope_id"`
	EventID     *uint   `json:"event_id"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency"`
	SpentAtDate Date    `json:"spent_at_date" binding:"required"`
}

// ExpenseUpdateRequest represents a partial expense update
type ExpenseUpdateRequest struct {
	EnvelopeID  *uint    `json:"envelope_id"`
	EventID     *uint    `json:"event_id"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Currency    *string  `json:"currency"`
	SpentAtDate *Date    `json:"spent_at_date"`
}
