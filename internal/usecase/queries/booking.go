package queries

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid pagination cursor"), errs.ErrValidation)

// BookingListFilter narrows a keyset page. A nil ParticipantID lists every booking.
type BookingListFilter struct {
	ParticipantID  *uuid.UUID
	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int32
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingListFilter) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByActor(ctx context.Context, actor user.Actor, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBooking(view.GuestID, view.HostID) {
		// same answer as a missing booking so ids cannot be probed
		return nil, booking.ErrBookingNotFound
	}
	return view, nil
}

// GetByIDSystem skips authorization; used for idempotent replays and internal reads.
func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByActor(ctx context.Context, actor user.Actor, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	filter := BookingListFilter{Limit: int32(limit) + 1}
	if !actor.IsAdmin() {
		id := actor.ID
		filter.ParticipantID = &id
	}
	if after != nil && after.After != "" {
		t, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, errs.Wrap(ErrInvalidCursor, err.Error())
		}
		filter.AfterCreatedAt = &t
		filter.AfterID = &id
	}

	items, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func BookingViewFromDomain(b *booking.Booking) *BookingView {
	price := b.Price()
	factors := make([]FactorView, len(price.AppliedFactors))
	for i, f := range price.AppliedFactors {
		factors[i] = FactorView{Name: f.Name, Multiplier: f.Multiplier}
	}

	view := &BookingView{
		ID:         b.ID(),
		PropertyID: b.PropertyID(),
		GuestID:    b.GuestID(),
		HostID:     b.HostID(),
		CheckIn:    b.Stay().CheckIn(),
		CheckOut:   b.Stay().CheckOut(),
		Nights:     b.Nights(),
		Adults:     b.Guests().Adults(),
		Children:   b.Guests().Children(),
		Status:     b.Status().String(),
		Price: PriceView{
			PolicyName:     price.PolicyName,
			Currency:       price.Currency,
			BasePrice:      price.BasePrice,
			Nights:         b.Nights(),
			Subtotal:       price.Subtotal,
			CleaningFee:    price.CleaningFee,
			ServiceFee:     price.ServiceFee,
			Taxes:          price.Taxes,
			Total:          price.Total,
			AppliedFactors: factors,
		},
		Payment: PaymentInfoView{
			PaymentID: b.Payment().PaymentID,
			Status:    string(b.Payment().Status),
			PaidAt:    b.Payment().PaidAt,
		},
		Modifications: make([]ModificationView, len(b.Modifications())),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
	if c := b.Cancellation(); c != nil {
		view.Cancellation = &CancellationView{
			CancelledBy: c.CancelledBy,
			CancelledAt: c.CancelledAt,
			Reason:      c.Reason,
		}
	}
	for i, m := range b.Modifications() {
		view.Modifications[i] = ModificationView{
			ModifiedBy:    m.ModifiedBy,
			ModifiedAt:    m.ModifiedAt,
			ChallengeID:   m.ChallengeID,
			ChangedFields: m.ChangedFields,
		}
	}
	return view
}
