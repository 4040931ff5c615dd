package converter

import (
	"rental-booking/internal/domain/payment"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"
)

func PaymentToCreateParams(p *payment.Payment) sqlc.CreatePaymentParams {
	c := p.Charges()
	return sqlc.CreatePaymentParams{
		ID:                p.ID(),
		BookingID:         p.BookingID(),
		UserID:            p.UserID(),
		PropertyID:        p.PropertyID(),
		Amount:            p.Amount(),
		Currency:          p.Currency(),
		Method:            p.Method(),
		Status:            p.Status().String(),
		ChargeBase:        c.Base,
		ChargeServiceFee:  c.ServiceFee,
		ChargeCleaningFee: c.CleaningFee,
		ChargeTaxes:       c.Taxes,
		ChargeDiscount:    c.Discount,
		CreatedAt:         pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func PaymentToUpdateParams(p *payment.Payment) sqlc.UpdatePaymentParams {
	c := p.Charges()
	return sqlc.UpdatePaymentParams{
		ID:                p.ID(),
		Amount:            p.Amount(),
		Status:            p.Status().String(),
		TransactionID:     pgconv.StringPtrToPgtype(p.TransactionID()),
		ChargeBase:        c.Base,
		ChargeServiceFee:  c.ServiceFee,
		ChargeCleaningFee: c.CleaningFee,
		ChargeTaxes:       c.Taxes,
		ChargeDiscount:    c.Discount,
		RefundAmount:      p.RefundAmount(),
		RefundReason:      pgconv.StringPtrToPgtype(p.RefundReason()),
		FailureReason:     pgconv.StringPtrToPgtype(p.FailureReason()),
		PaidAt:            pgconv.TimePtrToPgtype(p.PaidAt()),
		RefundedAt:        pgconv.TimePtrToPgtype(p.RefundedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func PaymentFromInfra(row sqlc.Payments) (*payment.Payment, error) {
	status, err := payment.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return payment.ReconstructPayment(
		row.ID, row.BookingID, row.UserID, row.PropertyID,
		row.Amount,
		row.Currency, row.Method,
		status,
		pgconv.StringPtrFromPgtype(row.TransactionID),
		payment.Charges{
			Base:        row.ChargeBase,
			ServiceFee:  row.ChargeServiceFee,
			CleaningFee: row.ChargeCleaningFee,
			Taxes:       row.ChargeTaxes,
			Discount:    row.ChargeDiscount,
		},
		row.RefundAmount,
		pgconv.StringPtrFromPgtype(row.RefundReason), pgconv.StringPtrFromPgtype(row.FailureReason),
		pgconv.TimePtrFromPgtype(row.PaidAt), pgconv.TimePtrFromPgtype(row.RefundedAt),
		pgconv.TimeFromPgtype(row.CreatedAt), pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
