//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// FixedNow is the reference instant used by builders and fake clocks.
var FixedNow = time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	PropertyID  uuid.UUID
	GuestID     uuid.UUID
	HostID      uuid.UUID
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    int
	MaxGuests   int
	BasePrice   int64
	CleaningFee int64
	Currency    string
	RequestedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		PropertyID:  uuid.New(),
		GuestID:     uuid.New(),
		HostID:      uuid.New(),
		CheckIn:     time.Date(2030, time.June, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2030, time.June, 13, 0, 0, 0, 0, time.UTC),
		Adults:      2,
		Children:    0,
		MaxGuests:   4,
		BasePrice:   1000,
		CleaningFee: 100,
		Currency:    "USD",
		RequestedAt: FixedNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuests(adults, children int) *BookingBuilder {
	b.Adults = adults
	b.Children = children
	return b
}

func (b *BookingBuilder) WithProperty(propertyID, hostID uuid.UUID) *BookingBuilder {
	b.PropertyID = propertyID
	b.HostID = hostID
	return b
}

func (b *BookingBuilder) WithGuestID(guestID uuid.UUID) *BookingBuilder {
	b.GuestID = guestID
	return b
}

func (b *BookingBuilder) Quote() pricing.Quote {
	policy, _ := pricing.NewFeePolicy("standard", pricing.DefaultServiceFeeRate, 0, b.Currency)
	stay, err := booking.NewStayRange(b.CheckIn, b.CheckOut)
	nights := 1
	if err == nil {
		nights = stay.Nights()
	}
	q, _ := pricing.NewCalculator(policy).Quote(b.BasePrice, nights, b.CleaningFee)
	return q
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	stay, err := booking.NewStayRange(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := booking.NewGuestCount(b.Adults, b.Children)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(booking.NewParams{
		PropertyID:  b.PropertyID,
		GuestID:     b.GuestID,
		HostID:      b.HostID,
		Stay:        stay,
		Guests:      guests,
		MaxGuests:   b.MaxGuests,
		Price:       booking.NewPriceSnapshot(b.Quote()),
		RequestedAt: b.RequestedAt,
	})
}

func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn.Format(reqdto.DateLayout),
		CheckOut:   b.CheckOut.Format(reqdto.DateLayout),
		Adults:     b.Adults,
		Children:   b.Children,
	}
}

// BuildView returns the read model of a freshly created pending booking.
func (b *BookingBuilder) BuildView() *queries.BookingView {
	q := b.Quote()
	factors := make([]queries.FactorView, 0, len(q.AppliedFactors))
	for _, f := range q.AppliedFactors {
		factors = append(factors, queries.FactorView{Name: f.Name, Multiplier: f.Multiplier})
	}
	return &queries.BookingView{
		ID:         uuid.New(),
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		HostID:     b.HostID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     q.Nights,
		Adults:     b.Adults,
		Children:   b.Children,
		Status:     booking.StatusPending.String(),
		Price: queries.PriceView{
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
		},
		Payment:   queries.PaymentInfoView{Status: booking.PaymentUnpaid.String()},
		CreatedAt: b.RequestedAt,
		UpdatedAt: b.RequestedAt,
	}
}
