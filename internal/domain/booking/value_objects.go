package booking

import (
	"math"
	"time"

	"rental-booking/internal/domain/pricing"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// StayRange is the half-open date interval [checkIn, checkOut) at UTC day granularity.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) (StayRange, error) {
	in, out := truncateToDate(checkIn), truncateToDate(checkOut)
	if in.IsZero() || out.IsZero() {
		return StayRange{}, ErrInvalidStayRange
	}
	if !in.Before(out) {
		return StayRange{}, ErrInvalidStayRange
	}
	return StayRange{checkIn: in, checkOut: out}, nil
}

func (r StayRange) CheckIn() time.Time  { return r.checkIn }
func (r StayRange) CheckOut() time.Time { return r.checkOut }

// Nights is always derived, never taken from input.
func (r StayRange) Nights() int {
	return int(math.Ceil(float64(r.checkOut.Sub(r.checkIn)) / float64(day)))
}

// Overlaps uses half-open semantics so back-to-back stays do not conflict.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && r.checkOut.After(other.checkIn)
}

func (r StayRange) Equal(other StayRange) bool {
	return r.checkIn.Equal(other.checkIn) && r.checkOut.Equal(other.checkOut)
}

func truncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type GuestCount struct {
	adults   int
	children int
}

func NewGuestCount(adults, children int) (GuestCount, error) {
	if adults < 1 || children < 0 {
		return GuestCount{}, ErrInvalidGuestCount
	}
	return GuestCount{adults: adults, children: children}, nil
}

func (g GuestCount) Adults() int   { return g.adults }
func (g GuestCount) Children() int { return g.children }
func (g GuestCount) Total() int    { return g.adults + g.children }

// PriceSnapshot freezes the quote the booking was priced with.
type PriceSnapshot struct {
	PolicyName     string
	Currency       string
	BasePrice      int64
	Subtotal       int64
	CleaningFee    int64
	ServiceFee     int64
	Taxes          int64
	Total          int64
	AppliedFactors []pricing.Factor
}

func NewPriceSnapshot(q pricing.Quote) PriceSnapshot {
	factors := make([]pricing.Factor, len(q.AppliedFactors))
	copy(factors, q.AppliedFactors)
	return PriceSnapshot{
		PolicyName:     q.PolicyName,
		Currency:       q.Currency,
		BasePrice:      q.BasePrice,
		Subtotal:       q.Subtotal,
		CleaningFee:    q.CleaningFee,
		ServiceFee:     q.ServiceFee,
		Taxes:          q.Taxes,
		Total:          q.Total,
		AppliedFactors: factors,
	}
}

type PaymentInfo struct {
	PaymentID *uuid.UUID
	Status    PaymentState
	PaidAt    *time.Time
}

type Cancellation struct {
	CancelledBy uuid.UUID
	CancelledAt time.Time
	Reason      string
}

type Modification struct {
	ModifiedBy    uuid.UUID `json:"modified_by"`
	ModifiedAt    time.Time `json:"modified_at"`
	ChallengeID   uuid.UUID `json:"challenge_id"`
	ChangedFields []string  `json:"changed_fields"`
}
