package commands

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
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
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrCodeDelivery = errs.New("failed to deliver otp code")

// IssuedChallenge never carries the code unless the development channel is enabled.
type IssuedChallenge struct {
	ChallengeID uuid.UUID
	BookingID   uuid.UUID
	Purpose     otp.Purpose
	ExpiresAt   time.Time
	Code        string
}

type VerifyOTPResult struct {
	Verified     bool
	AttemptsLeft int
	ChallengeID  uuid.UUID
	Purpose      otp.Purpose
	Booking      *queries.BookingView
}

type OTPCommands interface {
	GenerateOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*IssuedChallenge, error)
	ResendOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*IssuedChallenge, error)
	VerifyOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, code string) (*VerifyOTPResult, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type otpUseCaseImpl struct {
	uow            shared.UnitOfWork
	payments       *PaymentCoordinator
	sender         CodeSender
	throttle       Throttle
	hasher         *otp.CodeHasher
	policy         otp.Policy
	exposeCode     bool
	resendCooldown time.Duration
	random         io.Reader
	clock          clock.Clock
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

func NewOTPUseCase(
	uow shared.UnitOfWork,
	payments *PaymentCoordinator,
	sender CodeSender,
	throttle Throttle,
	cfg config.Config,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) (OTPCommands, error) {
	hasher, err := otp.NewCodeHasher(cfg.OTP.Secret)
	if err != nil {
		return nil, err
	}
	return &otpUseCaseImpl{
		uow:            uow,
		payments:       payments,
		sender:         sender,
		throttle:       throttle,
		hasher:         hasher,
		policy:         otp.Policy{TTL: cfg.OTP.TTL, MaxAttempts: cfg.OTP.MaxAttempts},
		exposeCode:     cfg.OTP.ExposeCode,
		resendCooldown: cfg.OTP.ResendCooldown,
		random:         rand.Reader,
		clock:          clk,
		metrics:        m,
		logger:         logger,
	}, nil
}

func (uc *otpUseCaseImpl) GenerateOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*IssuedChallenge, error) {
	return uc.issue(ctx, actor, bookingID, purpose)
}

// ResendOTP replaces the pending challenge, at most once per cooldown window.
func (uc *otpUseCaseImpl) ResendOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*IssuedChallenge, error) {
	ok, err := uc.throttle.Allow(ctx, "otp-resend:"+bookingID.String()+":"+actor.ID.String(), uc.resendCooldown)
	if err != nil {
		// a throttle outage must not block guests from confirming
		uc.logger.WarnContext(ctx, "otp resend throttle unavailable", "error", err)
	} else if !ok {
		return nil, otp.ErrResendTooSoon
	}
	return uc.issue(ctx, actor, bookingID, purpose)
}

func (uc *otpUseCaseImpl) issue(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*IssuedChallenge, error) {
	if !purpose.IsValid() {
		return nil, otp.ErrInvalidPurpose
	}
	code, err := otp.GenerateCode(uc.random)
	if err != nil {
		return nil, err
	}

	var ch *otp.Challenge
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if !actor.CanAccessBooking(b.GuestID(), b.HostID()) {
			return booking.ErrBookingAccessDenied
		}
		if err := purposeAllowed(b, purpose); err != nil {
			return err
		}

		// one unverified challenge per booking
		if _, err := tx.Challenges().DeleteUnverified(ctx, tx.DB(), b.ID()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		ch, err = otp.Issue(b.ID(), actor.ID, purpose, code, uc.hasher, uc.policy, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Challenges().Create(ctx, tx.DB(), ch); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.OTPIssued.WithLabelValues(purpose.String()).Inc()

	if err := uc.sender.Send(ctx, CodeDelivery{
		ChallengeID: ch.ID(),
		BookingID:   ch.BookingID(),
		UserID:      ch.UserID(),
		Purpose:     ch.Purpose(),
		Code:        code,
		ExpiresAt:   ch.ExpiresAt(),
	}); err != nil {
		return nil, errs.Mark(err, ErrCodeDelivery)
	}

	issued := &IssuedChallenge{
		ChallengeID: ch.ID(),
		BookingID:   ch.BookingID(),
		Purpose:     ch.Purpose(),
		ExpiresAt:   ch.ExpiresAt(),
	}
	if uc.exposeCode {
		issued.Code = code
	}
	return issued, nil
}

func purposeAllowed(b *booking.Booking, purpose otp.Purpose) error {
	switch purpose {
	case otp.PurposeBookingConfirmation:
		if b.Status() != booking.StatusPending {
			return booking.ErrInvalidTransition
		}
	case otp.PurposeBookingModification:
		return b.CanModify()
	case otp.PurposeBookingCancellation:
		if !b.Status().Holding() {
			return booking.ErrInvalidTransition
		}
	}
	return nil
}

// VerifyOTP persists the attempt counter even when the code does not match.
// A verified booking_confirmation confirms the booking and starts the charge.
func (uc *otpUseCaseImpl) VerifyOTP(ctx context.Context, actor user.Actor, bookingID uuid.UUID, code string) (*VerifyOTPResult, error) {
	if !otp.IsWellFormedCode(code) {
		return nil, otp.ErrInvalidCodeFormat
	}

	var (
		result  *VerifyOTPResult
		pending *payment.Payment
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, pending = nil, nil
		now := uc.clock.Now()

		// booking first, then challenge: the same lock order as ModifyBooking
		b, err := loadBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		ch, err := tx.Challenges().FindUnverifiedForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return otp.ErrChallengeNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if ch.UserID() != actor.ID {
			return otp.ErrChallengeNotOwned
		}

		res, err := ch.Verify(code, uc.hasher, now)
		if err != nil {
			return err
		}
		if err := tx.Challenges().Update(ctx, tx.DB(), ch); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = &VerifyOTPResult{
			Verified:     res.Verified,
			AttemptsLeft: res.AttemptsLeft,
			ChallengeID:  ch.ID(),
			Purpose:      ch.Purpose(),
		}
		if !res.Verified {
			return nil
		}

		if ch.Purpose() == otp.PurposeBookingConfirmation {
			p, err := uc.confirm(ctx, tx, b, now)
			if err != nil {
				return err
			}
			pending = p
		}
		result.Booking = queries.BookingViewFromDomain(b)
		return nil
	})
	if err != nil {
		uc.metrics.OTPVerifications.WithLabelValues(verifyOutcome(err)).Inc()
		return nil, err
	}

	if result.Verified {
		uc.metrics.OTPVerifications.WithLabelValues("verified").Inc()
	} else {
		uc.metrics.OTPVerifications.WithLabelValues("mismatch").Inc()
	}
	if pending != nil {
		uc.metrics.BookingChanges.WithLabelValues("confirmed").Inc()
		uc.payments.Dispatch(pending)
	}
	return result, nil
}

func (uc *otpUseCaseImpl) confirm(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) (*payment.Payment, error) {
	if err := b.Confirm(now); err != nil {
		return nil, err
	}
	p, err := uc.payments.CreatePendingPayment(ctx, tx, b)
	if err != nil {
		return nil, err
	}
	b.AttachPayment(p.ID(), now)
	if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := enqueueNotification(ctx, tx, TopicBookingConfirmed, map[string]any{
		"booking_id": b.ID(),
		"payment_id": p.ID(),
		"amount":     p.Amount(),
		"currency":   p.Currency(),
	}, now); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return p, nil
}

// SweepExpired deletes challenges past their expiry.
func (uc *otpUseCaseImpl) SweepExpired(ctx context.Context) (int64, error) {
	var removed int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Challenges().DeleteExpired(ctx, tx.DB(), uc.clock.Now())
		removed = n
		return err
	})
	return removed, err
}

func verifyOutcome(err error) string {
	switch {
	case errs.Is(err, otp.ErrMaxAttemptsExceeded):
		return "exhausted"
	case errs.Is(err, otp.ErrChallengeExpired):
		return "expired"
	case errs.Is(err, otp.ErrChallengeNotFound):
		return "not_found"
	default:
		return "error"
	}
}
