package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/cache"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobStore keeps QR batch progress in redis until StatusTTL elapses
type JobStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewJobStore(client *redis.Client, redisCfg config.RedisConfig, batchCfg config.QRBatchConfig) *JobStore {
	ttl := batchCfg.StatusTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JobStore{
		client: client,
		prefix: redisCfg.Prefix,
		ttl:    ttl,
	}
}

func (s *JobStore) Save(ctx context.Context, job *commands.QRBatchJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return errs.Wrap(err, "failed to encode qr batch job")
	}
	if err := s.client.Set(ctx, s.key(job.ID), body, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to save qr batch job")
	}
	return nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*commands.QRBatchJob, error) {
	body, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("qr batch job not found", err, infra.KindNotFound)
		}
		return nil, errs.Wrap(err, "failed to load qr batch job")
	}

	var job commands.QRBatchJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, errs.Wrap(err, "failed to decode qr batch job")
	}
	return &job, nil
}

func (s *JobStore) key(id uuid.UUID) string {
	return cache.Key(s.prefix, "qrjob", id.String())
}
