package worker

import (
	"context"

	"qr-coupon-server/internal/infra/queue"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/hibiken/asynq"
)

type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewService(cfg config.Config, consumer *Consumer) (*Service, error) {
	if consumer == nil {
		return nil, errs.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg.Redis, cfg.QRBatch)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server: server,
		mux:    mux,
	}, nil
}

// Start returns once the server is accepting tasks
func (s *Service) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errs.New("worker not initialized")
	}
	return s.server.Start(s.mux)
}

func (s *Service) Stop(_ context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}
