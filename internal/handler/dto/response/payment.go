package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	BookingID     uuid.UUID       `json:"bookingId"`
	UserID        uuid.UUID       `json:"userId"`
	PropertyID    uuid.UUID       `json:"propertyId"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transactionId,omitempty"`
	Charges       ChargesResponse `json:"charges"`
	RefundAmount  int64           `json:"refundAmount"`
	RefundReason  *string         `json:"refundReason,omitempty"`
	FailureReason *string         `json:"failureReason,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	RefundedAt    *time.Time      `json:"refundedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ChargesResponse struct {
	Base        int64 `json:"base"`
	ServiceFee  int64 `json:"serviceFee"`
	CleaningFee int64 `json:"cleaningFee"`
	Taxes       int64 `json:"taxes"`
	Discount    int64 `json:"discount"`
}

func FromPaymentView(v *queries.PaymentView) (*PaymentResponse, error) {
	return copyInto[PaymentResponse](v)
}
