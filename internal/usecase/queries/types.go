package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID            uuid.UUID          `json:"id"`
	PropertyID    uuid.UUID          `json:"property_id"`
	GuestID       uuid.UUID          `json:"guest_id"`
	HostID        uuid.UUID          `json:"host_id"`
	CheckIn       time.Time          `json:"check_in"`
	CheckOut      time.Time          `json:"check_out"`
	Nights        int                `json:"nights"`
	Adults        int                `json:"adults"`
	Children      int                `json:"children"`
	Status        string             `json:"status"`
	Price         PriceView          `json:"price"`
	Payment       PaymentInfoView    `json:"payment"`
	Cancellation  *CancellationView  `json:"cancellation,omitempty"`
	Modifications []ModificationView `json:"modifications"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type PriceView struct {
	PolicyName     string       `json:"policy_name"`
	Currency       string       `json:"currency"`
	BasePrice      int64        `json:"base_price"`
	Nights         int          `json:"nights"`
	Subtotal       int64        `json:"subtotal"`
	CleaningFee    int64        `json:"cleaning_fee"`
	ServiceFee     int64        `json:"service_fee"`
	Taxes          int64        `json:"taxes"`
	Total          int64        `json:"total"`
	AppliedFactors []FactorView `json:"applied_factors"`
}

type FactorView struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type PaymentInfoView struct {
	PaymentID *uuid.UUID `json:"payment_id,omitempty"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

type CancellationView struct {
	CancelledBy uuid.UUID `json:"cancelled_by"`
	CancelledAt time.Time `json:"cancelled_at"`
	Reason      string    `json:"reason"`
}

type ModificationView struct {
	ModifiedBy    uuid.UUID `json:"modified_by"`
	ModifiedAt    time.Time `json:"modified_at"`
	ChallengeID   uuid.UUID `json:"challenge_id"`
	ChangedFields []string  `json:"changed_fields"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaymentView struct {
	ID            uuid.UUID   `json:"id"`
	BookingID     uuid.UUID   `json:"booking_id"`
	UserID        uuid.UUID   `json:"user_id"`
	PropertyID    uuid.UUID   `json:"property_id"`
	HostID        uuid.UUID   `json:"host_id"`
	Amount        int64       `json:"amount"`
	Currency      string      `json:"currency"`
	Method        string      `json:"method"`
	Status        string      `json:"status"`
	TransactionID *string     `json:"transaction_id,omitempty"`
	Charges       ChargesView `json:"charges"`
	RefundAmount  int64       `json:"refund_amount"`
	RefundReason  *string     `json:"refund_reason,omitempty"`
	FailureReason *string     `json:"failure_reason,omitempty"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	RefundedAt    *time.Time  `json:"refunded_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type ChargesView struct {
	Base        int64 `json:"base"`
	ServiceFee  int64 `json:"service_fee"`
	CleaningFee int64 `json:"cleaning_fee"`
	Taxes       int64 `json:"taxes"`
	Discount    int64 `json:"discount"`
}

type QuoteView struct {
	PropertyID uuid.UUID `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	PriceView
}

type AvailabilityView struct {
	PropertyID uuid.UUID `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Available  bool      `json:"available"`
}
