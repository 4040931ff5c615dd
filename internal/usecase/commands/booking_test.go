//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	t.Run("creates a pending booking with a fresh quote", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), nil)
		require.NoError(t, err)

		assert.False(t, res.IsReplayed)
		view := res.Booking
		assert.Equal(t, booking.StatusPending.String(), view.Status)
		assert.Equal(t, f.guest.ID, view.GuestID)
		assert.Equal(t, f.property.HostID, view.HostID)
		assert.Equal(t, 3, view.Nights)
		assert.Equal(t, int64(3000), view.Price.Subtotal)
		assert.Equal(t, int64(300), view.Price.ServiceFee)
		assert.Equal(t, int64(100), view.Price.CleaningFee)
		assert.Equal(t, int64(3400), view.Price.Total)
		assert.Empty(t, view.Price.AppliedFactors)
		assert.Equal(t, []string{commands.TopicBookingCreated}, f.uow.Topics())
	})

	t.Run("identical range conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.createBooking(t)

		_, err := f.bookings.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleGuest), f.input(), nil)
		testutil.AssertErrorIs(t, err, booking.ErrDatesUnavailable)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Len(t, f.uow.Bookings(), 1)
	})

	t.Run("back to back stays do not conflict", func(t *testing.T) {
		f := newFixture(t)
		f.createBooking(t)

		in := f.input()
		in.CheckIn = stayOut
		in.CheckOut = stayOut.AddDate(0, 0, 2)
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, in, nil)
		require.NoError(t, err)

		in = f.input()
		in.CheckIn = stayIn.AddDate(0, 0, -2)
		in.CheckOut = stayIn
		_, err = f.bookings.CreateBooking(context.Background(), f.guest, in, nil)
		require.NoError(t, err)
		assert.Len(t, f.uow.Bookings(), 3)
	})

	t.Run("cancelled bookings release their dates", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		_, err := f.bookings.CancelBooking(context.Background(), f.guest, id, "plans changed")
		require.NoError(t, err)

		_, err = f.bookings.CreateBooking(context.Background(), f.guest, f.input(), nil)
		assert.NoError(t, err)
	})

	cases := []struct {
		name   string
		mutate func(*commands.CreateBookingInput)
		errIs  error
	}{
		{
			name:   "check-out before check-in",
			mutate: func(in *commands.CreateBookingInput) { in.CheckOut = in.CheckIn.AddDate(0, 0, -1) },
			errIs:  booking.ErrInvalidStayRange,
		},
		{
			name:   "no adults",
			mutate: func(in *commands.CreateBookingInput) { in.Adults = 0 },
			errIs:  booking.ErrInvalidGuestCount,
		},
		{
			name:   "over capacity",
			mutate: func(in *commands.CreateBookingInput) { in.Adults, in.Children = 3, 2 },
			errIs:  booking.ErrCapacityExceeded,
		},
		{
			name: "check-in in the past",
			mutate: func(in *commands.CreateBookingInput) {
				in.CheckIn = builder.FixedNow.AddDate(0, 0, -3)
				in.CheckOut = builder.FixedNow.AddDate(0, 0, -1)
			},
			errIs: booking.ErrCheckInInPast,
		},
		{
			name:   "unknown property",
			mutate: func(in *commands.CreateBookingInput) { in.PropertyID = uuid.New() },
			errIs:  queries.ErrPropertyNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.input()
			tc.mutate(&in)

			_, err := f.bookings.CreateBooking(context.Background(), f.guest, in, nil)
			testutil.AssertErrorIs(t, err, tc.errIs)
			assert.Empty(t, f.uow.Bookings())
			assert.Empty(t, f.uow.Notifications())
		})
	}
}

func TestCreateBooking_ConcurrentOverlap(t *testing.T) {
	f := newFixture(t)
	const attempts = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := f.input()
			// every request overlaps the others by at least one night
			in.CheckIn = stayIn.AddDate(0, 0, i%2)
			in.CheckOut = in.CheckIn.AddDate(0, 0, 2)
			_, err := f.bookings.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleGuest), in, nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, booking.ErrDatesUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, f.uow.Bookings(), 1)
}

func TestCreateBooking_Idempotency(t *testing.T) {
	t.Run("replays the original booking", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()

		first, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)
		second, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)
		assert.Len(t, f.uow.Bookings(), 1)
		assert.Len(t, f.uow.Notifications(), 1)
	})

	t.Run("same key with another body is rejected", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)

		in := f.input()
		in.Adults = 1
		_, err = f.bookings.CreateBooking(context.Background(), f.guest, in, &key)
		testutil.AssertErrorIs(t, err, errs.ErrIdempotencyMismatch)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("keys are scoped per user", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)

		_, err = f.bookings.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleGuest), f.input(), &key)
		testutil.AssertErrorIs(t, err, booking.ErrDatesUnavailable)
	})

	t.Run("failed request does not burn the key", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		in := f.input()
		in.PropertyID = uuid.New()
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, in, &key)
		testutil.RequireErrorIs(t, err, queries.ErrPropertyNotFound)

		res, err := f.bookings.CreateBooking(context.Background(), f.guest, in, &key)
		testutil.RequireErrorIs(t, err, queries.ErrPropertyNotFound)
		assert.Nil(t, res)
	})

	t.Run("expired key is reclaimed", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)

		f.clock.Add(f.cfg.Booking.IdempotencyTTL + time.Minute)
		in := f.input()
		in.CheckIn = stayOut
		in.CheckOut = stayOut.AddDate(0, 0, 1)
		res, err := f.bookings.CreateBooking(context.Background(), f.guest, in, &key)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Len(t, f.uow.Bookings(), 2)
	})

	t.Run("purge removes expired keys", func(t *testing.T) {
		f := newFixture(t)
		key := uuid.New()
		_, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), &key)
		require.NoError(t, err)

		n, err := f.bookings.PurgeExpiredIdempotencyKeys(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)

		f.clock.Add(f.cfg.Booking.IdempotencyTTL)
		n, err = f.bookings.PurgeExpiredIdempotencyKeys(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

// verifiedModificationChallenge runs the OTP flow for booking_modification and returns the challenge id.
func verifiedModificationChallenge(t *testing.T, f *fixture, actor user.Actor, bookingID uuid.UUID) uuid.UUID {
	t.Helper()
	issued, err := f.otps.GenerateOTP(context.Background(), actor, bookingID, otp.PurposeBookingModification)
	require.NoError(t, err)
	res, err := f.otps.VerifyOTP(context.Background(), actor, bookingID, f.sender.lastCode(t))
	require.NoError(t, err)
	require.True(t, res.Verified)
	return issued.ChallengeID
}

func TestModifyBooking(t *testing.T) {
	newDates := func(challengeID uuid.UUID) commands.ModifyBookingInput {
		in := stayIn.AddDate(0, 0, 7)
		out := stayIn.AddDate(0, 0, 11)
		return commands.ModifyBookingInput{CheckIn: &in, CheckOut: &out, ChallengeID: challengeID}
	}

	t.Run("moves the stay and records history", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, id)

		view, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		require.NoError(t, err)

		assert.Equal(t, 4, view.Nights)
		assert.Equal(t, int64(4000), view.Price.Subtotal)
		assert.Equal(t, int64(4500), view.Price.Total)
		require.Len(t, view.Modifications, 1)
		assert.Equal(t, f.guest.ID, view.Modifications[0].ModifiedBy)
		assert.Equal(t, challengeID, view.Modifications[0].ChallengeID)
		assert.Equal(t,
			[]string{booking.FieldCheckIn, booking.FieldCheckOut, booking.FieldTotal},
			view.Modifications[0].ChangedFields)
		assert.Contains(t, f.uow.Topics(), commands.TopicBookingModified)

		ch, ok := f.uow.Challenge(challengeID)
		require.True(t, ok)
		assert.NotNil(t, ch.ConsumedAt())
	})

	t.Run("guest change keeps the price", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, id)

		children := 1
		view, err := f.bookings.ModifyBooking(context.Background(), f.guest, id,
			commands.ModifyBookingInput{Children: &children, ChallengeID: challengeID})
		require.NoError(t, err)
		assert.Equal(t, 1, view.Children)
		assert.Equal(t, int64(3400), view.Price.Total)
		assert.Equal(t, []string{booking.FieldChildren}, view.Modifications[0].ChangedFields)
	})

	t.Run("proof is single use", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, id)
		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		require.NoError(t, err)

		children := 1
		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id,
			commands.ModifyBookingInput{Children: &children, ChallengeID: challengeID})
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
	})

	t.Run("unverified challenge is not proof", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		issued, err := f.otps.GenerateOTP(context.Background(), f.guest, id, otp.PurposeBookingModification)
		require.NoError(t, err)

		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(issued.ChallengeID))
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
		assert.True(t, errs.Is(err, errs.ErrPolicyViolation))
	})

	t.Run("missing or unknown challenge", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)

		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(uuid.Nil))
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(uuid.New()))
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
	})

	t.Run("confirmation challenge is not modification proof", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		issued, err := f.otps.GenerateOTP(context.Background(), f.guest, id, otp.PurposeBookingConfirmation)
		require.NoError(t, err)
		_, err = f.otps.VerifyOTP(context.Background(), f.guest, id, f.sender.lastCode(t))
		require.NoError(t, err)

		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(issued.ChallengeID))
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
	})

	t.Run("proof past its expiry is rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, id)
		f.clock.Add(f.cfg.OTP.TTL + time.Second)

		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		testutil.AssertErrorIs(t, err, otp.ErrInvalidProof)
	})

	t.Run("new dates must be free apart from the booking itself", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		other := f.input()
		other.CheckIn = stayIn.AddDate(0, 0, 8)
		other.CheckOut = stayIn.AddDate(0, 0, 9)
		_, err := f.bookings.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleGuest), other, nil)
		require.NoError(t, err)

		challengeID := verifiedModificationChallenge(t, f, f.guest, id)
		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		testutil.AssertErrorIs(t, err, booking.ErrDatesUnavailable)

		// extending into its own nights is fine; the failed attempt left the proof unused
		out := stayOut.AddDate(0, 0, 1)
		view, err := f.bookings.ModifyBooking(context.Background(), f.guest, id,
			commands.ModifyBookingInput{CheckOut: &out, ChallengeID: challengeID})
		require.NoError(t, err)
		assert.Equal(t, 4, view.Nights)
	})

	t.Run("cancelled booking cannot be modified", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, id)
		_, err := f.bookings.CancelBooking(context.Background(), f.guest, id, "plans changed")
		require.NoError(t, err)

		_, err = f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		testutil.AssertErrorIs(t, err, booking.ErrNotModifiable)
	})

	t.Run("someone else's proof", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		challengeID := verifiedModificationChallenge(t, f, f.host, id)

		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, newDates(challengeID))
		testutil.AssertErrorIs(t, err, otp.ErrChallengeNotOwned)
	})

	t.Run("stranger is unauthorized", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)

		_, err := f.bookings.ModifyBooking(context.Background(), user.NewActor(uuid.New(), user.RoleGuest), id, newDates(uuid.New()))
		testutil.AssertErrorIs(t, err, booking.ErrBookingAccessDenied)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("empty change set", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)

		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, id, commands.ModifyBookingInput{ChallengeID: uuid.New()})
		testutil.AssertErrorIs(t, err, booking.ErrNoChanges)
	})

	t.Run("pending payment follows the new price", func(t *testing.T) {
		f := newFixture(t)
		b, p := f.seedConfirmed(t)
		challengeID := verifiedModificationChallenge(t, f, f.guest, b.ID())

		view, err := f.bookings.ModifyBooking(context.Background(), f.guest, b.ID(), newDates(challengeID))
		require.NoError(t, err)

		repriced := f.mustPayment(t, p.ID())
		assert.Equal(t, view.Price.Total, repriced.Amount())
		assert.Equal(t, view.Price.Subtotal, repriced.Charges().Base)
	})

	t.Run("charged payment locks the price", func(t *testing.T) {
		f := newFixture(t)
		b, p := f.seedConfirmed(t)
		require.NoError(t, waitTask(t, f.payments.Dispatch(p)).Err)
		challengeID := verifiedModificationChallenge(t, f, f.guest, b.ID())

		out := stayOut.AddDate(0, 0, 1)
		_, err := f.bookings.ModifyBooking(context.Background(), f.guest, b.ID(),
			commands.ModifyBookingInput{CheckOut: &out, ChallengeID: challengeID})
		testutil.AssertErrorIs(t, err, payment.ErrPriceLocked)
		assert.Equal(t, errs.ErrPolicyViolation, errs.Category(err))

		stored := f.mustBooking(t, b.ID())
		assert.Equal(t, 3, stored.Nights())
		assert.Equal(t, stored.Price().Total, f.mustPayment(t, p.ID()).Amount())
		assert.Equal(t, payment.StatusCompleted, f.mustPayment(t, p.ID()).Status())
		ch, ok := f.uow.Challenge(challengeID)
		require.True(t, ok)
		assert.Nil(t, ch.ConsumedAt())
	})

	t.Run("charged payment allows a move at the same price", func(t *testing.T) {
		f := newFixture(t)
		b, p := f.seedConfirmed(t)
		require.NoError(t, waitTask(t, f.payments.Dispatch(p)).Err)
		challengeID := verifiedModificationChallenge(t, f, f.guest, b.ID())

		in := stayIn.AddDate(0, 0, 7)
		out := stayOut.AddDate(0, 0, 7)
		view, err := f.bookings.ModifyBooking(context.Background(), f.guest, b.ID(),
			commands.ModifyBookingInput{CheckIn: &in, CheckOut: &out, ChallengeID: challengeID})
		require.NoError(t, err)
		assert.Equal(t, f.mustPayment(t, p.ID()).Amount(), view.Price.Total)
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("cancellation window is inclusive at 24h", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		f.clock.Set(stayIn.Add(-24 * time.Hour))

		view, err := f.bookings.CancelBooking(context.Background(), f.guest, id, "plans changed")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled.String(), view.Status)
		require.NotNil(t, view.Cancellation)
		assert.Equal(t, f.guest.ID, view.Cancellation.CancelledBy)
		assert.Equal(t, "plans changed", view.Cancellation.Reason)
		assert.Contains(t, f.uow.Topics(), commands.TopicBookingCancelled)
	})

	t.Run("inside the window is a policy violation", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		f.clock.Set(stayIn.Add(-24*time.Hour + time.Minute))

		_, err := f.bookings.CancelBooking(context.Background(), f.guest, id, "too late")
		testutil.AssertErrorIs(t, err, booking.ErrCancellationWindow)
		assert.True(t, errs.Is(err, errs.ErrPolicyViolation))
		assert.Equal(t, booking.StatusPending, f.mustBooking(t, id).Status())
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)
		_, err := f.bookings.CancelBooking(context.Background(), f.guest, id, "")
		require.NoError(t, err)

		_, err = f.bookings.CancelBooking(context.Background(), f.guest, id, "")
		testutil.AssertErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("host may cancel, strangers may not", func(t *testing.T) {
		f := newFixture(t)
		id := f.createBooking(t)

		_, err := f.bookings.CancelBooking(context.Background(), user.NewActor(uuid.New(), user.RoleHost), id, "")
		testutil.AssertErrorIs(t, err, booking.ErrBookingAccessDenied)

		_, err = f.bookings.CancelBooking(context.Background(), f.host, id, "maintenance")
		assert.NoError(t, err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.bookings.CancelBooking(context.Background(), f.admin, uuid.New(), "")
		testutil.AssertErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("completed payment is refunded in full", func(t *testing.T) {
		f := newFixture(t)
		b, p := f.seedConfirmed(t)
		_, err := f.payments.MarkCompleted(context.Background(), p.ID(), approvedTxID, builder.FixedNow)
		require.NoError(t, err)

		view, err := f.bookings.CancelBooking(context.Background(), f.guest, b.ID(), "sick")
		require.NoError(t, err)
		assert.Equal(t, string(booking.PaymentRefunded), view.Payment.Status)

		refunded := f.mustPayment(t, p.ID())
		assert.Equal(t, payment.StatusRefunded, refunded.Status())
		assert.Equal(t, refunded.Amount(), refunded.RefundAmount())
		assert.Contains(t, f.uow.Topics(), commands.TopicRefundRequested)
	})

	t.Run("pending payment is voided", func(t *testing.T) {
		f := newFixture(t)
		b, p := f.seedConfirmed(t)

		view, err := f.bookings.CancelBooking(context.Background(), f.guest, b.ID(), "sick")
		require.NoError(t, err)
		assert.Equal(t, string(booking.PaymentVoided), view.Payment.Status)
		assert.Equal(t, payment.StatusCancelled, f.mustPayment(t, p.ID()).Status())
		assert.NotContains(t, f.uow.Topics(), commands.TopicRefundRequested)
	})

	t.Run("in-flight charge is aborted", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.set(blockUntilCancelled)
		b, p := f.seedConfirmed(t)
		task := f.payments.Dispatch(p)
		<-f.gateway.started

		_, err := f.bookings.CancelBooking(context.Background(), f.guest, b.ID(), "sick")
		require.NoError(t, err)

		out := waitTask(t, task)
		testutil.AssertErrorIs(t, out.Err, context.Canceled)
		assert.Equal(t, payment.StatusCancelled, f.mustPayment(t, p.ID()).Status())
	})
}

func TestCompleteFinishedBookings(t *testing.T) {
	f := newFixture(t)
	confirmed, _ := f.seedConfirmed(t)

	n, err := f.bookings.CompleteFinishedBookings(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Set(stayOut)
	n, err = f.bookings.CompleteFinishedBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, booking.StatusCompleted, f.mustBooking(t, confirmed.ID()).Status())

	_, err = f.bookings.CancelBooking(context.Background(), f.guest, confirmed.ID(), "")
	testutil.AssertErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestCreateBooking_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.uow.FailNext = errs.Mark(errs.New("connection reset"), errs.ErrDatabaseOperationFailed)

	_, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), nil)
	testutil.AssertErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	assert.Nil(t, errs.Category(err))
}
