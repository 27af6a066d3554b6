package otp

import (
	"context"
	"log/slog"

	"qr-coupon-server/internal/domain/consumer"
)

// LogSender stands in for an SMS gateway; codes are only logged at debug level
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendOTP(ctx context.Context, phone, code string) error {
	s.logger.InfoContext(ctx, "otp dispatched", "phone", consumer.MaskPhone(phone))
	s.logger.DebugContext(ctx, "otp code", "phone", consumer.MaskPhone(phone), "code", code)
	return nil
}
