package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ChargeRequest struct {
	PaymentID uuid.UUID
	Amount    int64
	Currency  string
	Method    string
}

type ChargeResult struct {
	Approved      bool
	TransactionID string
	ProcessedAt   time.Time
	FailureReason string
}

// PaymentGateway is the external card processor. Charge must honour ctx cancellation.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
