package bootstrap

import (
	"qr-coupon-server/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Infra is shared by the API server and the worker
var Infra = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	QueueModule,
	StorageModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	Infra,
	IdentityModule,
	components.HandlerModule,
)
