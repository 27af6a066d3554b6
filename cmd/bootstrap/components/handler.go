package components

import (
	"qr-coupon-server/internal/handler"
	"qr-coupon-server/internal/handler/api"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRedemptionHandler,
		api.NewOTPHandler,
		api.NewCampaignHandler,
		api.NewAnalyticsHandler,
		api.NewQRBatchHandler,
		NewAuthMiddleware,
		NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthMiddleware(identity middleware.PrincipalResolver, enforcer middleware.PolicyEnforcer, cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(identity, enforcer, cfg.JWT)
}

func NewRateLimiter(client *redis.Client, cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, cfg.Redis, cfg.RateLimit, cfg.OTP)
}
