//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/payment"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/shared"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const approvedTxID = "TXN-20300501120000-0a1b2c3d"

var (
	// Monday stay outside the peak season: 1000/night, no overlay factors.
	stayIn  = time.Date(2030, time.May, 20, 0, 0, 0, 0, time.UTC)
	stayOut = time.Date(2030, time.May, 23, 0, 0, 0, 0, time.UTC)
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	charge  func(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		started: make(chan struct{}, 16),
		charge: func(context.Context, shared.ChargeRequest) (shared.ChargeResult, error) {
			return shared.ChargeResult{Approved: true, TransactionID: approvedTxID, ProcessedAt: builder.FixedNow}, nil
		},
	}
}

func (g *fakeGateway) Charge(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error) {
	g.mu.Lock()
	g.calls++
	charge := g.charge
	g.mu.Unlock()
	g.started <- struct{}{}
	return charge(ctx, req)
}

func (g *fakeGateway) set(charge func(ctx context.Context, req shared.ChargeRequest) (shared.ChargeResult, error)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charge = charge
}

func blockUntilCancelled(ctx context.Context, _ shared.ChargeRequest) (shared.ChargeResult, error) {
	<-ctx.Done()
	return shared.ChargeResult{}, ctx.Err()
}

type captureSender struct {
	mu         sync.Mutex
	deliveries []commands.CodeDelivery
}

func (s *captureSender) Send(_ context.Context, d commands.CodeDelivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
	return nil
}

func (s *captureSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.deliveries)
	return s.deliveries[len(s.deliveries)-1].Code
}

type fakeThrottle struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeThrottle) Allow(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

type fixture struct {
	cfg      config.Config
	uow      *memuow.UnitOfWork
	clock    *clock.MockClock
	gateway  *fakeGateway
	sender   *captureSender
	throttle *fakeThrottle
	payments *commands.PaymentCoordinator
	bookings commands.BookingCommands
	otps     commands.OTPCommands
	property shared.PropertySnapshot
	guest    user.Actor
	host     user.Actor
	admin    user.Actor
}

func newFixture(t *testing.T, tweak ...func(*config.Config)) *fixture {
	t.Helper()

	cfg := config.NewTestConfig()
	for _, fn := range tweak {
		fn(&cfg)
	}

	f := &fixture{
		cfg:      cfg,
		uow:      memuow.New(),
		clock:    clock.NewMockClock(builder.FixedNow),
		gateway:  newFakeGateway(),
		sender:   &captureSender{},
		throttle: &fakeThrottle{allow: true},
		property: builder.NewPropertyBuilder().Build(),
		guest:    user.NewActor(uuid.New(), user.RoleGuest),
		admin:    user.NewActor(uuid.New(), user.RoleAdmin),
	}
	f.host = user.NewActor(f.property.HostID, user.RoleHost)
	f.uow.AddProperty(f.property)

	policy, err := pricing.NewFeePolicy(cfg.Pricing.PolicyName, cfg.Pricing.ServiceFeeRate, cfg.Pricing.TaxRate, cfg.Pricing.Currency)
	require.NoError(t, err)
	quoter := shared.NewQuoter(pricing.NewCalculator(policy), cfg)
	m := metrics.NewNopMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.payments = commands.NewPaymentCoordinator(f.uow, f.gateway, cfg, f.clock, m, logger)
	f.bookings = commands.NewBookingUseCase(f.uow, shared.NewAvailabilityChecker(), quoter, f.payments, cfg, f.clock, m)
	f.otps, err = commands.NewOTPUseCase(f.uow, f.payments, f.sender, f.throttle, cfg, f.clock, m, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = f.payments.Shutdown(ctx)
	})
	return f
}

func (f *fixture) input() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		PropertyID: f.property.ID,
		CheckIn:    stayIn,
		CheckOut:   stayOut,
		Adults:     2,
	}
}

func (f *fixture) createBooking(t *testing.T) uuid.UUID {
	t.Helper()
	res, err := f.bookings.CreateBooking(context.Background(), f.guest, f.input(), nil)
	require.NoError(t, err)
	return res.Booking.ID
}

// seedConfirmed stores a confirmed booking with a pending payment, bypassing the OTP flow.
func (f *fixture) seedConfirmed(t *testing.T) (*booking.Booking, *payment.Payment) {
	t.Helper()
	b := builder.NewBookingBuilder().
		WithProperty(f.property.ID, f.property.HostID).
		WithGuestID(f.guest.ID).
		WithStay(stayIn, stayOut).
		MustBuildDomain()
	require.NoError(t, b.Confirm(builder.FixedNow))

	charges := commands.ChargesFromPrice(b.Price())
	p, err := payment.NewPayment(payment.NewParams{
		BookingID:  b.ID(),
		UserID:     b.GuestID(),
		PropertyID: b.PropertyID(),
		Amount:     charges.Total(),
		Currency:   b.Price().Currency,
		Charges:    charges,
		CreatedAt:  builder.FixedNow,
	})
	require.NoError(t, err)
	b.AttachPayment(p.ID(), builder.FixedNow)

	f.uow.PutBooking(b)
	f.uow.PutPayment(p)
	return b, p
}

func (f *fixture) mustBooking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	b, ok := f.uow.Booking(id)
	require.True(t, ok)
	return b
}

func (f *fixture) mustPayment(t *testing.T, id uuid.UUID) *payment.Payment {
	t.Helper()
	p, ok := f.uow.Payment(id)
	require.True(t, ok)
	return p
}

func waitTask(t *testing.T, task *commands.ChargeTask) commands.ChargeOutcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	out, err := task.Wait(ctx)
	require.NoError(t, err)
	return out
}
