package commands

import (
	"context"
	"log/slog"
)

// LoggingCodeSender records the delivery intent. The code itself is never logged.
type LoggingCodeSender struct {
	logger *slog.Logger
}

func NewLoggingCodeSender(logger *slog.Logger) CodeSender {
	return &LoggingCodeSender{logger: logger}
}

func (s *LoggingCodeSender) Send(ctx context.Context, d CodeDelivery) error {
	s.logger.InfoContext(ctx, "otp code ready for delivery",
		"challenge_id", d.ChallengeID,
		"booking_id", d.BookingID,
		"user_id", d.UserID,
		"purpose", d.Purpose,
		"expires_at", d.ExpiresAt,
	)
	return nil
}
