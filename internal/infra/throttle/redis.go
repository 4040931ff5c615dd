package throttle

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/config"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "rental-booking:throttle:"

// RedisThrottle admits one call per key and window. A nil client admits everything.
type RedisThrottle struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		slog.Warn("REDIS_ADDR not set, otp resend cooldown disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisThrottle(client *redis.Client) *RedisThrottle {
	return &RedisThrottle{client: client}
}

// Allow reports whether key has not been seen within window.
func (t *RedisThrottle) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	if t.client == nil || window <= 0 {
		return true, nil
	}
	ok, err := t.client.SetNX(ctx, keyPrefix+key, 1, window).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to check throttle key", err)
	}
	return ok, nil
}

func (t *RedisThrottle) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}
