package components

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/gateway"
	"rental-booking/internal/infra/throttle"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(
			throttle.NewRedisThrottle,
			fx.As(new(commands.Throttle)),
		),
		gateway.NewMockGateway,
		commands.NewLoggingCodeSender,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	client := throttle.NewRedisClient(cfg.Redis)
	if client == nil {
		return nil
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Unreachable redis only disables the resend cooldown.
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, otp resend cooldown is not enforced", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
