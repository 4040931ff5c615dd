package gateway

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/shared"
)

// DeclineAmount is charged to simulate a card decline.
const DeclineAmount int64 = 13

// MockGateway approves every charge after a fixed processing delay.
type MockGateway struct {
	delay  time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

func NewMockGateway(cfg config.Config, clk clock.Clock, logger *slog.Logger) shared.PaymentGateway {
	return &MockGateway{
		delay:  cfg.Payment.GatewayDelay,
		clock:  clk,
		logger: logger,
	}
}

func (g *MockGateway) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	g.logger.Debug("mock gateway charging",
		"payment_id", req.PaymentID,
		"amount", req.Amount,
		"currency", req.Currency,
	)

	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return shared.ChargeResult{}, ctx.Err()
	case <-timer.C:
	}

	now := g.clock.Now().UTC()
	if req.Amount == DeclineAmount {
		return shared.ChargeResult{
			Approved:      false,
			ProcessedAt:   now,
			FailureReason: "card declined",
		}, nil
	}

	txID, err := payment.NewTransactionID(now, rand.Reader)
	if err != nil {
		return shared.ChargeResult{}, err
	}
	return shared.ChargeResult{
		Approved:      true,
		TransactionID: txID,
		ProcessedAt:   now,
	}, nil
}
