package commands

import (
	"context"
	"encoding/json"
	"time"

	"rental-booking/internal/domain/otp"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Throttle admits one call per key within window.
type Throttle interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// CodeSender hands a freshly issued code to the delivery channel (SMS, email).
type CodeSender interface {
	Send(ctx context.Context, d CodeDelivery) error
}

type CodeDelivery struct {
	ChallengeID uuid.UUID
	BookingID   uuid.UUID
	UserID      uuid.UUID
	Purpose     otp.Purpose
	Code        string
	ExpiresAt   time.Time
}

const notificationKindEmail = "email"

// Outbox topics written in the same transaction as the state change.
const (
	TopicBookingCreated   = "booking_created"
	TopicBookingConfirmed = "booking_confirmed"
	TopicBookingModified  = "booking_modified"
	TopicBookingCancelled = "booking_cancelled"
	TopicRefundRequested  = "refund_requested"
)

func enqueueNotification(ctx context.Context, tx shared.Tx, topic string, payload map[string]any, runAt time.Time) error {
	payload["type"] = topic
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindEmail, topic, body, runAt)
}
