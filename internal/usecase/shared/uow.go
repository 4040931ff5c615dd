package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/payment"
	sqlc "rental-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Challenges() ChallengeRepository
	Payments() PaymentRepository
	Notifications() NotificationRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	// CountOverlapping counts holding bookings intersecting [checkIn, checkOut).
	CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error)
	// BookedNights counts nights of holding bookings that fall inside [from, to).
	BookedNights(ctx context.Context, propertyID uuid.UUID, from, to time.Time, exclude *uuid.UUID) (int64, error)
}

type BookingRepository interface {
	// LockProperty serializes writers of one property until the transaction ends.
	LockProperty(ctx context.Context, tx sqlc.DBTX, propertyID uuid.UUID) error
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error)
	ListFinished(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]*booking.Booking, error)
}

type ChallengeRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, c *otp.Challenge) error
	Update(ctx context.Context, tx sqlc.DBTX, c *otp.Challenge) error
	// DeleteUnverified removes pending challenges so a new one can be issued.
	DeleteUnverified(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) (int64, error)
	FindUnverifiedForUpdate(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) (*otp.Challenge, error)
	FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*otp.Challenge, error)
	DeleteExpired(ctx context.Context, tx sqlc.DBTX, before time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error
	Update(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error
	FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*payment.Payment, error)
	ListStale(ctx context.Context, tx sqlc.DBTX, updatedBefore time.Time, limit int32) ([]*payment.Payment, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether a new key row was created.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, resultBookingID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, requestHash string, now, expiresAt time.Time) (int64, error)
	DeleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
