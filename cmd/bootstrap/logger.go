package bootstrap

import (
	"context"
	"log/slog"

	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger {
			return l.GetSlogLogger()
		},
	),
)

// NewLogger also becomes the slog default, so packages logging through slog share its handler
func NewLogger(lc fx.Lifecycle, cfg config.Config) *middleware.Logger {
	logger := middleware.NewLogger(cfg.Log)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return logger.Close()
		},
	})
	return logger
}
