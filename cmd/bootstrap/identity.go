package bootstrap

import (
	"qr-coupon-server/internal/authz"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/infra/identity"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/jwt"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			identity.NewProvider,
			fx.As(new(middleware.PrincipalResolver)),
		),
		fx.Annotate(
			authz.NewDefaultService,
			fx.As(new(middleware.PolicyEnforcer)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
