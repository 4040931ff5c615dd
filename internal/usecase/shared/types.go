package shared

import (
	"time"

	"github.com/google/uuid"
)

// PropertySnapshot is the part of the listing the booking engine prices and validates against.
type PropertySnapshot struct {
	ID          uuid.UUID
	HostID      uuid.UUID
	Title       string
	Location    string
	Category    string
	Rating      float64
	Amenities   []string
	BasePrice   int64
	CleaningFee int64
	Currency    string
	MaxGuests   int
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
