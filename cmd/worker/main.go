package main

import (
	"context"
	"log/slog"
	"os"

	"qr-coupon-server/cmd/bootstrap"
	"qr-coupon-server/internal/worker"

	"go.uber.org/fx"
)

func startWorker(lc fx.Lifecycle, svc *worker.Service, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting qr batch worker")
			return svc.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping qr batch worker")
			return svc.Stop(ctx)
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Infra,
		fx.Provide(
			worker.NewConsumer,
			worker.NewService,
		),
		fx.Invoke(startWorker),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("worker failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("worker failed to stop cleanly", "error", err)
	}
}
