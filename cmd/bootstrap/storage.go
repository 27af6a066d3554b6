package bootstrap

import (
	"context"

	"qr-coupon-server/internal/infra/storage"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/usecase/commands"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		fx.Annotate(
			NewStorage,
			fx.As(new(commands.ArtifactStorage)),
		),
	),
)

func NewStorage(cfg config.Config) (*storage.S3Storage, error) {
	return storage.NewS3Storage(context.Background(), cfg.Storage)
}
