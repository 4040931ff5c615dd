package converter

import (
	"encoding/json"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func BookingToCreateParams(b *booking.Booking) (sqlc.CreateBookingParams, error) {
	factors, modifications, err := marshalBookingHistory(b)
	if err != nil {
		return sqlc.CreateBookingParams{}, err
	}

	price := b.Price()
	pay := b.Payment()
	return sqlc.CreateBookingParams{
		ID:             b.ID(),
		PropertyID:     b.PropertyID(),
		GuestID:        b.GuestID(),
		HostID:         b.HostID(),
		CheckIn:        pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOut:       pgconv.DateToPgtype(b.Stay().CheckOut()),
		Adults:         pgconv.IntToInt32(b.Guests().Adults()),
		Children:       pgconv.IntToInt32(b.Guests().Children()),
		Status:         b.Status().String(),
		PricePolicy:    price.PolicyName,
		Currency:       price.Currency,
		BasePrice:      price.BasePrice,
		Subtotal:       price.Subtotal,
		CleaningFee:    price.CleaningFee,
		ServiceFee:     price.ServiceFee,
		Taxes:          price.Taxes,
		Total:          price.Total,
		AppliedFactors: factors,
		PaymentID:      pgconv.UUIDPtrToPgtype(pay.PaymentID),
		PaymentStatus:  string(pay.Status),
		PaidAt:         pgconv.TimePtrToPgtype(pay.PaidAt),
		Modifications:  modifications,
		CreatedAt:      pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(b.UpdatedAt()),
	}, nil
}

func BookingToUpdateParams(b *booking.Booking) (sqlc.UpdateBookingParams, error) {
	factors, modifications, err := marshalBookingHistory(b)
	if err != nil {
		return sqlc.UpdateBookingParams{}, err
	}

	price := b.Price()
	pay := b.Payment()
	params := sqlc.UpdateBookingParams{
		ID:             b.ID(),
		CheckIn:        pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOut:       pgconv.DateToPgtype(b.Stay().CheckOut()),
		Adults:         pgconv.IntToInt32(b.Guests().Adults()),
		Children:       pgconv.IntToInt32(b.Guests().Children()),
		Status:         b.Status().String(),
		PricePolicy:    price.PolicyName,
		Currency:       price.Currency,
		BasePrice:      price.BasePrice,
		Subtotal:       price.Subtotal,
		CleaningFee:    price.CleaningFee,
		ServiceFee:     price.ServiceFee,
		Taxes:          price.Taxes,
		Total:          price.Total,
		AppliedFactors: factors,
		PaymentID:      pgconv.UUIDPtrToPgtype(pay.PaymentID),
		PaymentStatus:  string(pay.Status),
		PaidAt:         pgconv.TimePtrToPgtype(pay.PaidAt),
		CancelledBy:    pgtype.UUID{Valid: false},
		CancelledAt:    pgtype.Timestamptz{Valid: false},
		CancelReason:   pgtype.Text{Valid: false},
		Modifications:  modifications,
		UpdatedAt:      pgconv.TimeToPgtype(b.UpdatedAt()),
	}

	if c := b.Cancellation(); c != nil {
		params.CancelledBy = pgconv.UUIDToPgtype(c.CancelledBy)
		params.CancelledAt = pgconv.TimeToPgtype(c.CancelledAt)
		params.CancelReason = pgconv.StringToPgtype(c.Reason)
	}

	return params, nil
}

func BookingFromInfra(row sqlc.Bookings) (*booking.Booking, error) {
	stay, err := booking.NewStayRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, errs.Wrap(err, "stored stay range is invalid")
	}
	guests, err := booking.NewGuestCount(int(row.Adults), int(row.Children))
	if err != nil {
		return nil, errs.Wrap(err, "stored guest count is invalid")
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking status is invalid")
	}

	var factors []pricing.Factor
	if len(row.AppliedFactors) > 0 {
		if err := json.Unmarshal(row.AppliedFactors, &factors); err != nil {
			return nil, errs.Wrap(err, "failed to decode applied factors")
		}
	}
	var modifications []booking.Modification
	if len(row.Modifications) > 0 {
		if err := json.Unmarshal(row.Modifications, &modifications); err != nil {
			return nil, errs.Wrap(err, "failed to decode modifications")
		}
	}

	price := booking.PriceSnapshot{
		PolicyName:     row.PricePolicy,
		Currency:       row.Currency,
		BasePrice:      row.BasePrice,
		Subtotal:       row.Subtotal,
		CleaningFee:    row.CleaningFee,
		ServiceFee:     row.ServiceFee,
		Taxes:          row.Taxes,
		Total:          row.Total,
		AppliedFactors: factors,
	}
	pay := booking.PaymentInfo{
		PaymentID: pgconv.UUIDPtrFromPgtype(row.PaymentID),
		Status:    booking.PaymentState(row.PaymentStatus),
		PaidAt:    pgconv.TimePtrFromPgtype(row.PaidAt),
	}

	var cancellation *booking.Cancellation
	if row.CancelledAt.Valid {
		cancellation = &booking.Cancellation{
			CancelledAt: row.CancelledAt.Time,
			Reason:      row.CancelReason.String,
		}
		if by := pgconv.UUIDPtrFromPgtype(row.CancelledBy); by != nil {
			cancellation.CancelledBy = *by
		}
	}

	return booking.ReconstructBooking(
		row.ID, row.PropertyID, row.GuestID, row.HostID,
		stay, guests, price, status, pay, cancellation, modifications,
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func marshalBookingHistory(b *booking.Booking) ([]byte, []byte, error) {
	factors := b.Price().AppliedFactors
	if factors == nil {
		factors = []pricing.Factor{}
	}
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to encode applied factors")
	}

	modifications := b.Modifications()
	if modifications == nil {
		modifications = []booking.Modification{}
	}
	modificationsJSON, err := json.Marshal(modifications)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to encode modifications")
	}
	return factorsJSON, modificationsJSON, nil
}
