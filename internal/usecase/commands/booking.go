package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/pkg/patch"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	endpointCreateBooking = "POST /api/bookings"
	completionBatchSize   = 500
)

var (
	ErrIdempotencyInProgress = errs.Mark(errs.ErrIdempotencyInProgress, errs.ErrConflict)
	ErrIdempotencyMismatch   = errs.Mark(errs.ErrIdempotencyMismatch, errs.ErrConflict)
	ErrIdempotencyCorrupted  = errs.New("completed idempotency key has no result booking")
)

type CreateBookingInput struct {
	PropertyID uuid.UUID `json:"property_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
}

// ModifyBookingInput carries the verified booking_modification challenge as proof.
type ModifyBookingInput struct {
	CheckIn     *time.Time
	CheckOut    *time.Time
	Adults      *int
	Children    *int
	ChallengeID uuid.UUID
}

func (in ModifyBookingInput) empty() bool {
	return in.CheckIn == nil && in.CheckOut == nil && in.Adults == nil && in.Children == nil
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
	ModifyBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, in ModifyBookingInput) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason string) (*queries.BookingView, error)
	CompleteFinishedBookings(ctx context.Context) (int, error)
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	checker        *shared.AvailabilityChecker
	quoter         *shared.Quoter
	payments       *PaymentCoordinator
	policy         booking.CancellationPolicy
	idempotencyTTL time.Duration
	clock          clock.Clock
	metrics        *metrics.Metrics
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	checker *shared.AvailabilityChecker,
	quoter *shared.Quoter,
	payments *PaymentCoordinator,
	cfg config.Config,
	clk clock.Clock,
	m *metrics.Metrics,
) BookingCommands {
	ttl := cfg.Booking.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &bookingUseCaseImpl{
		uow:            uow,
		checker:        checker,
		quoter:         quoter,
		payments:       payments,
		policy:         booking.NewCancellationPolicy(cfg.Booking.CancellationWindow),
		idempotencyTTL: ttl,
		clock:          clk,
		metrics:        m,
	}
}

// CreateBooking checks availability and inserts under the property lock, so
// two overlapping requests cannot both succeed.
func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	actor user.Actor,
	in CreateBookingInput,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	stay, err := booking.NewStayRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	guests, err := booking.NewGuestCount(in.Adults, in.Children)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(in)
	result := &CreateBookingResult{}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		if idempotencyKey != nil {
			rec, err := uc.claimIdempotencyKey(ctx, tx, *idempotencyKey, actor.ID, requestHash, now)
			if err != nil {
				return err
			}
			if rec != nil {
				b, err := loadBooking(ctx, tx, *rec.ResultBookingID)
				if err != nil {
					return err
				}
				result.Booking = queries.BookingViewFromDomain(b)
				result.IsReplayed = true
				return nil
			}
		}

		reads := tx.Reads()
		prop, err := queries.LoadProperty(ctx, reads, in.PropertyID)
		if err != nil {
			return err
		}
		if err := tx.Bookings().LockProperty(ctx, tx.DB(), prop.ID); err != nil {
			return err
		}
		ok, err := uc.checker.IsAvailable(ctx, reads, prop.ID, stay, nil)
		if err != nil {
			return err
		}
		if !ok {
			return booking.ErrDatesUnavailable
		}

		quote, err := uc.quoter.Quote(ctx, reads, prop, stay, nil, now)
		if err != nil {
			return err
		}
		b, err := booking.NewBooking(booking.NewParams{
			PropertyID:  prop.ID,
			GuestID:     actor.ID,
			HostID:      prop.HostID,
			Stay:        stay,
			Guests:      guests,
			MaxGuests:   prop.MaxGuests,
			Price:       booking.NewPriceSnapshot(quote),
			RequestedAt: now,
		})
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return booking.ErrDatesUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := enqueueNotification(ctx, tx, TopicBookingCreated, map[string]any{
			"booking_id":  b.ID(),
			"property_id": b.PropertyID(),
			"guest_id":    b.GuestID(),
			"host_id":     b.HostID(),
		}, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *idempotencyKey, actor.ID, b.ID()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		result.Booking = queries.BookingViewFromDomain(b)
		return nil
	})
	if err != nil {
		uc.metrics.BookingsCreated.WithLabelValues(createOutcome(err)).Inc()
		return nil, err
	}
	if result.IsReplayed {
		uc.metrics.BookingsCreated.WithLabelValues("replayed").Inc()
	} else {
		uc.metrics.BookingsCreated.WithLabelValues("created").Inc()
	}
	return result, nil
}

// claimIdempotencyKey returns the completed record to replay, or nil when
// this request owns the key.
func (uc *bookingUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*shared.IdempotencyRecord, error) {
	expiresAt := now.Add(uc.idempotencyTTL)
	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, endpointCreateBooking, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// purged between insert and read
			return nil, ErrIdempotencyInProgress
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !existing.ExpiresAt.After(now) {
		n, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, requestHash, now, expiresAt)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if n == 0 {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}
	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return nil, ErrIdempotencyCorrupted
		}
		return existing, nil
	default:
		return nil, ErrIdempotencyInProgress
	}
}

func (uc *bookingUseCaseImpl) ModifyBooking(
	ctx context.Context,
	actor user.Actor,
	bookingID uuid.UUID,
	in ModifyBookingInput,
) (*queries.BookingView, error) {
	if in.empty() {
		return nil, booking.ErrNoChanges
	}

	var view *queries.BookingView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, err := loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessBooking(b.GuestID(), b.HostID()) {
			return booking.ErrBookingAccessDenied
		}
		if err := b.CanModify(); err != nil {
			return err
		}

		challengeID, err := uc.consumeModificationProof(ctx, tx, actor, b.ID(), in.ChallengeID, now)
		if err != nil {
			return err
		}

		stay, guests, err := modifiedValues(b, in)
		if err != nil {
			return err
		}

		reads := tx.Reads()
		prop, err := queries.LoadProperty(ctx, reads, b.PropertyID())
		if err != nil {
			return err
		}

		var price *booking.PriceSnapshot
		if !stay.Equal(b.Stay()) {
			if err := tx.Bookings().LockProperty(ctx, tx.DB(), prop.ID); err != nil {
				return err
			}
			self := b.ID()
			ok, err := uc.checker.IsAvailable(ctx, reads, prop.ID, stay, &self)
			if err != nil {
				return err
			}
			if !ok {
				return booking.ErrDatesUnavailable
			}
			quote, err := uc.quoter.Quote(ctx, reads, prop, stay, &self, now)
			if err != nil {
				return err
			}
			snap := booking.NewPriceSnapshot(quote)
			price = &snap
		}

		var linked *payment.Payment
		if price != nil {
			if linked, err = linkedPayment(ctx, tx, b); err != nil {
				return err
			}
			if linked != nil && linked.Status() != payment.StatusPending &&
				ChargesFromPrice(*price) != linked.Charges() {
				return payment.ErrPriceLocked
			}
		}

		if err := b.Modify(actor.ID, challengeID, &stay, &guests, price, prop.MaxGuests, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return booking.ErrDatesUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if linked != nil && linked.Status() == payment.StatusPending {
			if err := linked.Reprice(ChargesFromPrice(b.Price()), now); err != nil {
				return err
			}
			if err := tx.Payments().Update(ctx, tx.DB(), linked); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		last := b.Modifications()[len(b.Modifications())-1]
		if err := enqueueNotification(ctx, tx, TopicBookingModified, map[string]any{
			"booking_id":     b.ID(),
			"modified_by":    actor.ID,
			"changed_fields": last.ChangedFields,
		}, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		view = queries.BookingViewFromDomain(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.BookingChanges.WithLabelValues("modified").Inc()
	return view, nil
}

// consumeModificationProof spends a server-side verified challenge. Any
// mismatch is reported as a missing proof.
func (uc *bookingUseCaseImpl) consumeModificationProof(
	ctx context.Context,
	tx shared.Tx,
	actor user.Actor,
	bookingID, challengeID uuid.UUID,
	now time.Time,
) (uuid.UUID, error) {
	if challengeID == uuid.Nil {
		return uuid.Nil, otp.ErrInvalidProof
	}
	ch, err := tx.Challenges().FindByIDForUpdate(ctx, tx.DB(), challengeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, otp.ErrInvalidProof
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if ch.UserID() != actor.ID {
		return uuid.Nil, otp.ErrChallengeNotOwned
	}
	if err := ch.Consume(bookingID, otp.PurposeBookingModification, now); err != nil {
		return uuid.Nil, err
	}
	if err := tx.Challenges().Update(ctx, tx.DB(), ch); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return ch.ID(), nil
}

func modifiedValues(b *booking.Booking, in ModifyBookingInput) (booking.StayRange, booking.GuestCount, error) {
	stay, err := booking.NewStayRange(
		patch.Coalesce(in.CheckIn, b.Stay().CheckIn()),
		patch.Coalesce(in.CheckOut, b.Stay().CheckOut()),
	)
	if err != nil {
		return booking.StayRange{}, booking.GuestCount{}, err
	}
	guests, err := booking.NewGuestCount(
		patch.Coalesce(in.Adults, b.Guests().Adults()),
		patch.Coalesce(in.Children, b.Guests().Children()),
	)
	if err != nil {
		return booking.StayRange{}, booking.GuestCount{}, err
	}
	return stay, guests, nil
}

// linkedPayment loads the booking's payment, if one was created.
func linkedPayment(ctx context.Context, tx shared.Tx, b *booking.Booking) (*payment.Payment, error) {
	pid := b.Payment().PaymentID
	if pid == nil {
		return nil, nil
	}
	return loadPayment(ctx, tx, *pid)
}

// CancelBooking refunds a captured payment in full and voids one still in flight.
func (uc *bookingUseCaseImpl) CancelBooking(
	ctx context.Context,
	actor user.Actor,
	bookingID uuid.UUID,
	reason string,
) (*queries.BookingView, error) {
	var (
		view    *queries.BookingView
		aborted *uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		aborted = nil
		now := uc.clock.Now()
		b, err := loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessBooking(b.GuestID(), b.HostID()) {
			return booking.ErrBookingAccessDenied
		}
		if err := b.Cancel(actor.ID, reason, uc.policy, now); err != nil {
			return err
		}

		if pid := b.Payment().PaymentID; pid != nil {
			p, err := loadPayment(ctx, tx, *pid)
			if err != nil {
				return err
			}
			switch p.Status() {
			case payment.StatusCompleted:
				if err := uc.payments.refundInTx(ctx, tx, p, p.Amount(), "booking cancelled: "+reason, now); err != nil {
					return err
				}
				if err := b.SetPaymentState(booking.PaymentRefunded, now); err != nil {
					return err
				}
			case payment.StatusPending, payment.StatusProcessing:
				if _, err := uc.payments.voidInTx(ctx, tx, p, now); err != nil {
					return err
				}
				if err := b.SetPaymentState(booking.PaymentVoided, now); err != nil {
					return err
				}
				id := p.ID()
				aborted = &id
			}
		}

		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := enqueueNotification(ctx, tx, TopicBookingCancelled, map[string]any{
			"booking_id":   b.ID(),
			"cancelled_by": actor.ID,
			"reason":       reason,
		}, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		view = queries.BookingViewFromDomain(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if aborted != nil {
		uc.payments.Abort(*aborted)
	}
	uc.metrics.BookingChanges.WithLabelValues("cancelled").Inc()
	return view, nil
}

// CompleteFinishedBookings closes confirmed stays whose check-out has passed.
func (uc *bookingUseCaseImpl) CompleteFinishedBookings(ctx context.Context) (int, error) {
	completed := 0
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		completed = 0
		now := uc.clock.Now()
		finished, err := tx.Bookings().ListFinished(ctx, tx.DB(), now, completionBatchSize)
		if err != nil {
			return err
		}
		for _, b := range finished {
			if err := b.Complete(now); err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
				return err
			}
			completed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.metrics.BookingChanges.WithLabelValues("completed").Add(float64(completed))
	return completed, nil
}

func (uc *bookingUseCaseImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), uc.clock.Now())
		purged = n
		return err
	})
	return purged, err
}

func createOutcome(err error) string {
	switch {
	case errs.Is(err, booking.ErrDatesUnavailable):
		return "conflict"
	case errs.Is(err, errs.ErrValidation):
		return "invalid"
	case errs.Is(err, errs.ErrNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrConflict):
		return "idempotency_conflict"
	default:
		return "error"
	}
}

func calculateRequestHash(in CreateBookingInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
