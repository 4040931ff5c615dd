package bootstrap

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/scheduler"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(func(*scheduler.Scheduler) {}),
)

type SchedulerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Bookings  commands.BookingCommands
	OTP       commands.OTPCommands
	Payments  *commands.PaymentCoordinator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// NewScheduler registers the maintenance jobs. SCHEDULER_ENABLED=false keeps
// them registered but never started, so RunNow still works.
func NewScheduler(p SchedulerParams) (*scheduler.Scheduler, error) {
	cfg := p.Config.Scheduler
	jobs := []scheduler.Job{
		{Name: "otp-sweep", Spec: cfg.OTPSweepSpec, Run: p.OTP.SweepExpired},
		{Name: "booking-completion", Spec: cfg.CompletionSpec, Run: func(ctx context.Context) (int64, error) {
			n, err := p.Bookings.CompleteFinishedBookings(ctx)
			return int64(n), err
		}},
		{Name: "stale-payments", Spec: cfg.StalePaymentSpec, Run: func(ctx context.Context) (int64, error) {
			n, err := p.Payments.FailStale(ctx)
			return int64(n), err
		}},
		{Name: "idempotency-purge", Spec: cfg.IdempotencyPurgeSpec, Run: p.Bookings.PurgeExpiredIdempotencyKeys},
	}

	s, err := scheduler.New(jobs, p.Metrics, p.Logger)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		p.Logger.Info("scheduler disabled")
		return s, nil
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: s.Stop,
	})
	return s, nil
}
