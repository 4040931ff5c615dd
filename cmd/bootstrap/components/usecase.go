package components

import (
	"context"
	"log/slog"

	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/metrics"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewFeePolicy,
	pricing.NewCalculator,
	shared.NewQuoter,
	shared.NewAvailabilityChecker,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewPaymentCoordinator,
		func(c *commands.PaymentCoordinator) commands.PaymentCommands { return c },
		commands.NewBookingUseCase,
		commands.NewOTPUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPaymentQueries,
		queries.NewPropertyQueries,
	),
)

func NewFeePolicy(cfg config.Config) (pricing.FeePolicy, error) {
	p := cfg.Pricing
	return pricing.NewFeePolicy(p.PolicyName, p.ServiceFeeRate, p.TaxRate, p.Currency)
}

// NewPaymentCoordinator waits for in-flight gateway calls on shutdown.
func NewPaymentCoordinator(
	lc fx.Lifecycle,
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	cfg config.Config,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
) *commands.PaymentCoordinator {
	c := commands.NewPaymentCoordinator(uow, gateway, cfg, clk, m, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Shutdown(ctx)
		},
	})
	return c
}
