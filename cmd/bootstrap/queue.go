package bootstrap

import (
	"context"

	"qr-coupon-server/internal/infra/queue"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		fx.Annotate(
			NewQueueClient,
			fx.As(new(commands.QRBatchQueue)),
		),
		fx.Annotate(
			NewJobStore,
			fx.As(new(commands.QRBatchJobStore)),
		),
	),
)

func NewQueueClient(lc fx.Lifecycle, cfg config.Config) *queue.Client {
	client := queue.NewClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewJobStore(client *redis.Client, cfg config.Config) *queue.JobStore {
	return queue.NewJobStore(client, cfg.Redis, cfg.QRBatch)
}
