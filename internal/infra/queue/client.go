package queue

import (
	"context"
	"time"

	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

const (
	DefaultQueue = "default"
	// generation is not resumable, so a failed job is reported instead of replayed
	qrGenerateMaxRetry = 0
	qrGenerateTimeout  = 30 * time.Minute
)

type Client struct {
	client       *asynq.Client
	defaultQueue string
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client:       asynq.NewClient(BuildRedisOpt(cfg)),
		defaultQueue: DefaultQueue,
	}
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueQRBatch(ctx context.Context, payload commands.QRBatchTask) error {
	task, err := NewQRGenerateTask(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode qr batch task")
	}
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.defaultQueue),
		asynq.MaxRetry(qrGenerateMaxRetry),
		asynq.Timeout(qrGenerateTimeout),
		asynq.TaskID(payload.JobID.String()),
	)
	if err != nil {
		return errs.Wrap(err, "failed to enqueue qr batch task")
	}
	return nil
}

func BuildServerConfig(redisCfg config.RedisConfig, batchCfg config.QRBatchConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 2
	if batchCfg.Concurrency > 0 {
		concurrency = batchCfg.Concurrency
	}
	return BuildRedisOpt(redisCfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{DefaultQueue: 1},
	}
}

func BuildRedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
