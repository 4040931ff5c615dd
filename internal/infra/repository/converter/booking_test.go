//go:build unit

package converter_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowFromUpdate(b *booking.Booking, p sqlc.UpdateBookingParams) sqlc.Bookings {
	created, _ := converter.BookingToCreateParams(b)
	return sqlc.Bookings{
		ID:             p.ID,
		PropertyID:     created.PropertyID,
		GuestID:        created.GuestID,
		HostID:         created.HostID,
		CheckIn:        p.CheckIn,
		CheckOut:       p.CheckOut,
		Adults:         p.Adults,
		Children:       p.Children,
		Status:         p.Status,
		PricePolicy:    p.PricePolicy,
		Currency:       p.Currency,
		BasePrice:      p.BasePrice,
		Subtotal:       p.Subtotal,
		CleaningFee:    p.CleaningFee,
		ServiceFee:     p.ServiceFee,
		Taxes:          p.Taxes,
		Total:          p.Total,
		AppliedFactors: p.AppliedFactors,
		PaymentID:      p.PaymentID,
		PaymentStatus:  p.PaymentStatus,
		PaidAt:         p.PaidAt,
		CancelledBy:    p.CancelledBy,
		CancelledAt:    p.CancelledAt,
		CancelReason:   p.CancelReason,
		Modifications:  p.Modifications,
		CreatedAt:      created.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func TestBookingConversion_PreservesHistory(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain()
	now := builder.FixedNow

	stay, err := booking.NewStayRange(b.Stay().CheckIn().AddDate(0, 0, 1), b.Stay().CheckOut().AddDate(0, 0, 2))
	require.NoError(t, err)
	price := b.Price()
	price.Total += 500
	price.AppliedFactors = []pricing.Factor{{Name: "demand", Multiplier: 1.2}}
	require.NoError(t, b.Modify(b.GuestID(), uuid.New(), &stay, nil, &price, 4, now))
	require.NoError(t, b.Cancel(b.GuestID(), "plans changed", booking.NewCancellationPolicy(24*time.Hour), now))

	params, err := converter.BookingToUpdateParams(b)
	require.NoError(t, err)
	assert.True(t, params.CancelledAt.Valid)
	assert.Equal(t, "plans changed", params.CancelReason.String)

	restored, err := converter.BookingFromInfra(rowFromUpdate(b, params))
	require.NoError(t, err)

	assert.Equal(t, b.ID(), restored.ID())
	assert.True(t, b.Stay().Equal(restored.Stay()))
	assert.Equal(t, booking.StatusCancelled, restored.Status())
	assert.Equal(t, b.Cancellation(), restored.Cancellation())
	if diff := cmp.Diff(b.Price(), restored.Price()); diff != "" {
		t.Errorf("price mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b.Modifications(), restored.Modifications()); diff != "" {
		t.Errorf("modifications mismatch (-want +got):\n%s", diff)
	}
}

func TestBookingFromInfra_RejectsUnknownStatus(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain()
	params, err := converter.BookingToUpdateParams(b)
	require.NoError(t, err)

	row := rowFromUpdate(b, params)
	row.Status = "archived"

	_, err = converter.BookingFromInfra(row)
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}
