package booking

import (
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayRange    = errs.Mark(errs.New("check-in must be before check-out"), errs.ErrValidation)
	ErrCheckInInPast       = errs.Mark(errs.New("check-in cannot be in the past"), errs.ErrValidation)
	ErrInvalidGuestCount   = errs.Mark(errs.New("at least one adult and no negative guest counts required"), errs.ErrValidation)
	ErrCapacityExceeded    = errs.Mark(errs.New("guest count exceeds property capacity"), errs.ErrValidation)
	ErrInvalidStatus       = errs.Mark(errs.New("invalid booking status"), errs.ErrValidation)
	ErrNoChanges           = errs.Mark(errs.New("modification changes nothing"), errs.ErrValidation)
	ErrInvalidTransition   = errs.Mark(errs.New("booking status does not allow this transition"), errs.ErrPolicyViolation)
	ErrAlreadyCancelled    = errs.Mark(errs.New("booking is already cancelled"), errs.ErrPolicyViolation)
	ErrNotModifiable       = errs.Mark(errs.New("booking can no longer be modified"), errs.ErrPolicyViolation)
	ErrCancellationWindow  = errs.Mark(errs.New("cancellation must happen at least 24h before check-in"), errs.ErrPolicyViolation)
	ErrStayNotFinished     = errs.Mark(errs.New("stay has not ended yet"), errs.ErrPolicyViolation)
	ErrDatesUnavailable    = errs.Mark(errs.New("property is not available for the requested dates"), errs.ErrConflict)
	ErrPaymentNotAttached  = errs.Mark(errs.New("booking has no payment attached"), errs.ErrConflict)
	ErrBookingNotFound     = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrBookingAccessDenied = errs.Mark(errs.New("actor cannot access this booking"), errs.ErrUnauthorized)
)

type NewParams struct {
	PropertyID  uuid.UUID
	GuestID     uuid.UUID
	HostID      uuid.UUID
	Stay        StayRange
	Guests      GuestCount
	MaxGuests   int
	Price       PriceSnapshot
	RequestedAt time.Time
}

type Booking struct {
	id            uuid.UUID
	propertyID    uuid.UUID
	guestID       uuid.UUID
	hostID        uuid.UUID
	stay          StayRange
	guests        GuestCount
	price         PriceSnapshot
	status        Status
	payment       PaymentInfo
	cancellation  *Cancellation
	modifications []Modification
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a pending booking. Availability is checked by the caller
// under the same lock that persists the booking.
func NewBooking(p NewParams) (*Booking, error) {
	if truncateToDate(p.RequestedAt).After(p.Stay.CheckIn()) {
		return nil, ErrCheckInInPast
	}
	if p.MaxGuests > 0 && p.Guests.Total() > p.MaxGuests {
		return nil, ErrCapacityExceeded
	}

	now := p.RequestedAt.UTC()
	return &Booking{
		id:         uuid.New(),
		propertyID: p.PropertyID,
		guestID:    p.GuestID,
		hostID:     p.HostID,
		stay:       p.Stay,
		guests:     p.Guests,
		price:      p.Price,
		status:     StatusPending,
		payment:    PaymentInfo{Status: PaymentUnpaid},
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, propertyID, guestID, hostID uuid.UUID,
	stay StayRange,
	guests GuestCount,
	price PriceSnapshot,
	status Status,
	payment PaymentInfo,
	cancellation *Cancellation,
	modifications []Modification,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		propertyID:    propertyID,
		guestID:       guestID,
		hostID:        hostID,
		stay:          stay,
		guests:        guests,
		price:         price,
		status:        status,
		payment:       payment,
		cancellation:  cancellation,
		modifications: modifications,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Confirm is only reached after a verified booking_confirmation challenge.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	b.status = StatusConfirmed
	b.touch(now)
	return nil
}

func (b *Booking) CanModify() error {
	switch b.status {
	case StatusPending, StatusConfirmed:
		return nil
	default:
		return ErrNotModifiable
	}
}

// Modify applies new dates, guests and price. Nil arguments keep the current value.
func (b *Booking) Modify(actorID, challengeID uuid.UUID, stay *StayRange, guests *GuestCount, price *PriceSnapshot, maxGuests int, now time.Time) error {
	if err := b.CanModify(); err != nil {
		return err
	}

	var changed []string
	if stay != nil {
		if !stay.Equal(b.stay) && truncateToDate(now).After(stay.CheckIn()) {
			return ErrCheckInInPast
		}
		if !stay.CheckIn().Equal(b.stay.CheckIn()) {
			changed = append(changed, FieldCheckIn)
		}
		if !stay.CheckOut().Equal(b.stay.CheckOut()) {
			changed = append(changed, FieldCheckOut)
		}
	}
	if guests != nil {
		if maxGuests > 0 && guests.Total() > maxGuests {
			return ErrCapacityExceeded
		}
		if guests.Adults() != b.guests.Adults() {
			changed = append(changed, FieldAdults)
		}
		if guests.Children() != b.guests.Children() {
			changed = append(changed, FieldChildren)
		}
	}
	if price != nil && price.Total != b.price.Total {
		changed = append(changed, FieldTotal)
	}
	if len(changed) == 0 {
		return ErrNoChanges
	}

	if stay != nil {
		b.stay = *stay
	}
	if guests != nil {
		b.guests = *guests
	}
	if price != nil {
		b.price = *price
	}
	b.modifications = append(b.modifications, Modification{
		ModifiedBy:    actorID,
		ModifiedAt:    now.UTC(),
		ChallengeID:   challengeID,
		ChangedFields: changed,
	})
	b.touch(now)
	return nil
}

func (b *Booking) Cancel(actorID uuid.UUID, reason string, policy CancellationPolicy, now time.Time) error {
	switch b.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrInvalidTransition
	}
	if !policy.CanCancel(b.stay.CheckIn(), now) {
		return ErrCancellationWindow
	}

	b.status = StatusCancelled
	b.cancellation = &Cancellation{
		CancelledBy: actorID,
		CancelledAt: now.UTC(),
		Reason:      reason,
	}
	b.touch(now)
	return nil
}

// Complete closes a confirmed stay once check-out has passed.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}
	if now.Before(b.stay.CheckOut()) {
		return ErrStayNotFinished
	}
	b.status = StatusCompleted
	b.touch(now)
	return nil
}

func (b *Booking) AttachPayment(paymentID uuid.UUID, now time.Time) {
	b.payment = PaymentInfo{PaymentID: &paymentID, Status: PaymentPending}
	b.touch(now)
}

func (b *Booking) MarkPaid(paidAt time.Time) error {
	if b.payment.PaymentID == nil {
		return ErrPaymentNotAttached
	}
	if b.payment.Status == PaymentPaid {
		return nil
	}
	t := paidAt.UTC()
	b.payment.Status = PaymentPaid
	b.payment.PaidAt = &t
	b.touch(paidAt)
	return nil
}

func (b *Booking) SetPaymentState(state PaymentState, now time.Time) error {
	if b.payment.PaymentID == nil {
		return ErrPaymentNotAttached
	}
	if b.payment.Status == state {
		return nil
	}
	b.payment.Status = state
	b.touch(now)
	return nil
}

func (b *Booking) IsAccessibleBy(actorID uuid.UUID) bool {
	return actorID == b.guestID || actorID == b.hostID
}

func (b *Booking) touch(now time.Time) {
	b.updatedAt = now.UTC()
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) PropertyID() uuid.UUID         { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID            { return b.guestID }
func (b *Booking) HostID() uuid.UUID             { return b.hostID }
func (b *Booking) Stay() StayRange               { return b.stay }
func (b *Booking) Nights() int                   { return b.stay.Nights() }
func (b *Booking) Guests() GuestCount            { return b.guests }
func (b *Booking) Price() PriceSnapshot          { return b.price }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) Payment() PaymentInfo          { return b.payment }
func (b *Booking) Cancellation() *Cancellation   { return b.cancellation }
func (b *Booking) Modifications() []Modification { return b.modifications }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
