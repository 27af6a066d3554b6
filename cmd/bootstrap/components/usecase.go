package components

import (
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra/otp"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewCouponCodeGenerator,
		fx.As(new(coupon.Generator)),
	),
	fx.Annotate(
		otp.NewLogSender,
		fx.As(new(otp.SMSSender)),
	),
	fx.Annotate(
		NewOTPService,
		fx.As(new(commands.OTPService)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRedemptionUseCase,
		commands.NewBottleUseCase,
		commands.NewOTPUseCase,
		commands.NewCampaignUseCase,
		commands.NewQRBatchUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCampaignQueries,
		queries.NewAnalyticsQueries,
		queries.NewCouponQueries,
	),
)

func NewCouponCodeGenerator(cfg config.Config) (*coupon.RandomGenerator, error) {
	return coupon.NewRandomGenerator(cfg.Coupon.CodePrefix)
}

func NewOTPService(client *redis.Client, sender otp.SMSSender, cfg config.Config) *otp.Service {
	return otp.NewService(client, sender, cfg.Redis, cfg.OTP)
}
