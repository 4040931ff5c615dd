package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, business rates)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Pricing   PricingConfig
	OTP       OTPConfig
	Booking   BookingConfig
	Payment   PaymentConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Idempotent-Replay"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// Addr empty disables redis-backed features.
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type PricingConfig struct {
	PolicyName       string        `envconfig:"PRICING_POLICY_NAME" default:"standard"`
	ServiceFeeRate   float64       `envconfig:"PRICING_SERVICE_FEE_RATE" default:"0.10"`
	TaxRate          float64       `envconfig:"PRICING_TAX_RATE" default:"0"`
	Currency         string        `envconfig:"PRICING_CURRENCY" default:"USD"`
	LastMinuteWindow time.Duration `envconfig:"PRICING_LAST_MINUTE_WINDOW" default:"72h"`
	DemandWindowDays int           `envconfig:"PRICING_DEMAND_WINDOW_DAYS" default:"30"`
}

type OTPConfig struct {
	TTL            time.Duration `envconfig:"OTP_TTL" default:"10m"`
	MaxAttempts    int           `envconfig:"OTP_MAX_ATTEMPTS" default:"3"`
	Secret         string        `envconfig:"OTP_SECRET" required:"true"`
	ExposeCode     bool          `envconfig:"OTP_EXPOSE_CODE" default:"false"`
	ResendCooldown time.Duration `envconfig:"OTP_RESEND_COOLDOWN" default:"30s"`
}

type BookingConfig struct {
	CancellationWindow time.Duration `envconfig:"BOOKING_CANCELLATION_WINDOW" default:"24h"`
	IdempotencyTTL     time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

type PaymentConfig struct {
	GatewayTimeout time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"30s"`
	GatewayDelay   time.Duration `envconfig:"PAYMENT_GATEWAY_DELAY" default:"2s"`
	WebhookSecret  string        `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	Method         string        `envconfig:"PAYMENT_DEFAULT_METHOD" default:"card"`
	StuckAfter     time.Duration `envconfig:"PAYMENT_STUCK_AFTER" default:"15m"`
}

type SchedulerConfig struct {
	Enabled              bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	OTPSweepSpec         string `envconfig:"SCHEDULER_OTP_SWEEP_SPEC" default:"@every 1m"`
	CompletionSpec       string `envconfig:"SCHEDULER_COMPLETION_SPEC" default:"*/15 * * * *"`
	StalePaymentSpec     string `envconfig:"SCHEDULER_STALE_PAYMENT_SPEC" default:"*/5 * * * *"`
	IdempotencyPurgeSpec string `envconfig:"SCHEDULER_IDEMPOTENCY_PURGE_SPEC" default:"@hourly"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the booking rules cannot work with.
func (c Config) Validate() error {
	var problems []string
	if c.Pricing.ServiceFeeRate < 0 || c.Pricing.ServiceFeeRate > 1 {
		problems = append(problems, "PRICING_SERVICE_FEE_RATE must be within [0,1]")
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate > 1 {
		problems = append(problems, "PRICING_TAX_RATE must be within [0,1]")
	}
	if c.Pricing.DemandWindowDays < 1 {
		problems = append(problems, "PRICING_DEMAND_WINDOW_DAYS must be positive")
	}
	if c.OTP.MaxAttempts < 1 {
		problems = append(problems, "OTP_MAX_ATTEMPTS must be positive")
	}
	if c.OTP.TTL <= 0 {
		problems = append(problems, "OTP_TTL must be positive")
	}
	if c.Booking.CancellationWindow < 0 {
		problems = append(problems, "BOOKING_CANCELLATION_WINDOW cannot be negative")
	}
	if c.Payment.GatewayTimeout <= 0 {
		problems = append(problems, "PAYMENT_GATEWAY_TIMEOUT must be positive")
	}
	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		problems = append(problems, "JWT_DURATION is not a duration")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
			ExposeHeaders: []string{"X-Idempotent-Replay"},
			MaxAge:        time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
		Pricing: PricingConfig{
			PolicyName:       "standard",
			ServiceFeeRate:   0.10,
			TaxRate:          0,
			Currency:         "USD",
			LastMinuteWindow: 72 * time.Hour,
			DemandWindowDays: 30,
		},
		OTP: OTPConfig{
			TTL:            10 * time.Minute,
			MaxAttempts:    3,
			Secret:         "test-otp-secret",
			ExposeCode:     true,
			ResendCooldown: 0,
		},
		Booking: BookingConfig{
			CancellationWindow: 24 * time.Hour,
			IdempotencyTTL:     24 * time.Hour,
		},
		Payment: PaymentConfig{
			GatewayTimeout: 5 * time.Second,
			GatewayDelay:   10 * time.Millisecond,
			WebhookSecret:  "test-webhook-secret",
			Method:         "card",
			StuckAfter:     15 * time.Minute,
		},
		Scheduler: SchedulerConfig{
			Enabled: false,
		},
	}
}
