package request

import (
	"time"

	"rental-booking/internal/usecase/shared"
)

type RefundRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"max=500"`
}

// PaymentCallbackRequest is the gateway's out-of-band charge result.
type PaymentCallbackRequest struct {
	Approved      *bool      `json:"approved" binding:"required"`
	TransactionID string     `json:"transactionId" binding:"max=64"`
	FailureReason string     `json:"failureReason" binding:"max=255"`
	ProcessedAt   *time.Time `json:"processedAt"`
}

func (r PaymentCallbackRequest) ToResult() shared.ChargeResult {
	res := shared.ChargeResult{
		Approved:      *r.Approved,
		TransactionID: r.TransactionID,
		FailureReason: r.FailureReason,
	}
	if r.ProcessedAt != nil {
		res.ProcessedAt = r.ProcessedAt.UTC()
	}
	return res
}
