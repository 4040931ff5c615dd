package queries

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = errs.Mark(errs.New("property not found"), errs.ErrNotFound)

type PropertyQueries interface {
	Quote(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*QuoteView, error)
	Availability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
}

type propertyQueriesImpl struct {
	uow     shared.UnitOfWork
	checker *shared.AvailabilityChecker
	quoter  *shared.Quoter
	clock   clock.Clock
}

func NewPropertyQueries(uow shared.UnitOfWork, checker *shared.AvailabilityChecker, quoter *shared.Quoter, clk clock.Clock) PropertyQueries {
	return &propertyQueriesImpl{uow: uow, checker: checker, quoter: quoter, clock: clk}
}

// Quote is computed fresh on every call; quotes are never cached.
func (q *propertyQueriesImpl) Quote(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*QuoteView, error) {
	stay, err := booking.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	reads := q.uow.CommandReads()
	prop, err := LoadProperty(ctx, reads, propertyID)
	if err != nil {
		return nil, err
	}
	quote, err := q.quoter.Quote(ctx, reads, prop, stay, nil, q.clock.Now())
	if err != nil {
		return nil, err
	}
	return &QuoteView{
		PropertyID: propertyID,
		CheckIn:    stay.CheckIn(),
		CheckOut:   stay.CheckOut(),
		PriceView:  PriceViewFromQuote(quote),
	}, nil
}

func (q *propertyQueriesImpl) Availability(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error) {
	stay, err := booking.NewStayRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	reads := q.uow.CommandReads()
	if _, err = LoadProperty(ctx, reads, propertyID); err != nil {
		return nil, err
	}
	ok, err := q.checker.IsAvailable(ctx, reads, propertyID, stay, nil)
	if err != nil {
		return nil, err
	}
	return &AvailabilityView{
		PropertyID: propertyID,
		CheckIn:    stay.CheckIn(),
		CheckOut:   stay.CheckOut(),
		Available:  ok,
	}, nil
}

// LoadProperty maps a missing listing to ErrPropertyNotFound.
func LoadProperty(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*shared.PropertySnapshot, error) {
	prop, err := reads.PropertyByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return prop, nil
}

func PriceViewFromQuote(q pricing.Quote) PriceView {
	factors := make([]FactorView, len(q.AppliedFactors))
	for i, f := range q.AppliedFactors {
		factors[i] = FactorView{Name: f.Name, Multiplier: f.Multiplier}
	}
	return PriceView{
		PolicyName:     q.PolicyName,
		Currency:       q.Currency,
		BasePrice:      q.BasePrice,
		Nights:         q.Nights,
		Subtotal:       q.Subtotal,
		CleaningFee:    q.CleaningFee,
		ServiceFee:     q.ServiceFee,
		Taxes:          q.Taxes,
		Total:          q.Total,
		AppliedFactors: factors,
	}
}
