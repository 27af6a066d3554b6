package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra/readstore"
	"qr-coupon-server/internal/infra/repository"
	"qr-coupon-server/internal/infra/repository/converter"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) *PostgresUoW {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// Contended writes are conditional UPDATEs or unique inserts, so ReadCommitted holds the invariants
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	campaignRepo   shared.CampaignRepository
	bottleRepo     shared.BottleRepository
	consumerRepo   shared.ConsumerRepository
	couponRepo     shared.CouponRepository
	redemptionRepo shared.RedemptionRepository
	commandReads   shared.CommandReads
}

func (t *pgTx) Campaigns() shared.CampaignRepository {
	if t.campaignRepo == nil {
		t.campaignRepo = repository.NewCampaignRepository(t.uow.q, t.dbtx)
	}
	return t.campaignRepo
}

func (t *pgTx) Bottles() shared.BottleRepository {
	if t.bottleRepo == nil {
		t.bottleRepo = repository.NewBottleRepository(t.uow.q, t.dbtx)
	}
	return t.bottleRepo
}

func (t *pgTx) Consumers() shared.ConsumerRepository {
	if t.consumerRepo == nil {
		t.consumerRepo = repository.NewConsumerRepository(t.uow.q, t.dbtx)
	}
	return t.consumerRepo
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.couponRepo == nil {
		t.couponRepo = repository.NewCouponRepository(t.uow.q, t.dbtx)
	}
	return t.couponRepo
}

func (t *pgTx) Redemptions() shared.RedemptionRepository {
	if t.redemptionRepo == nil {
		t.redemptionRepo = repository.NewRedemptionRepository(t.uow.q, t.dbtx)
	}
	return t.redemptionRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX

	// Lazy-initialized readstores
	campaignStore *readstore.CampaignReadStore
	bottleStore   *readstore.BottleReadStore
	couponStore   *readstore.CouponReadStore
}

func (r *commandReads) campaigns() *readstore.CampaignReadStore {
	if r.campaignStore == nil {
		r.campaignStore = readstore.NewCampaignReadStore(r.uow.q, r.dbtx)
	}
	return r.campaignStore
}

func (r *commandReads) bottles() *readstore.BottleReadStore {
	if r.bottleStore == nil {
		r.bottleStore = readstore.NewBottleReadStore(r.uow.q, r.dbtx)
	}
	return r.bottleStore
}

func (r *commandReads) coupons() *readstore.CouponReadStore {
	if r.couponStore == nil {
		r.couponStore = readstore.NewCouponReadStore(r.uow.q, r.dbtx)
	}
	return r.couponStore
}

func (r *commandReads) CampaignByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	view, err := r.campaigns().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.CampaignFromView(view), nil
}

func (r *commandReads) BottleByToken(ctx context.Context, token string) (*bottle.Bottle, error) {
	view, err := r.bottles().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return converter.BottleFromView(view), nil
}

func (r *commandReads) BottleHasRedemption(ctx context.Context, bottleID uuid.UUID) (bool, error) {
	return r.bottles().HasRedemption(ctx, bottleID)
}

func (r *commandReads) CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error) {
	view, err := r.coupons().FindByCode(ctx, code.String())
	if err != nil {
		return nil, err
	}
	return converter.CouponFromView(view), nil
}

func (r *commandReads) CouponExistsForUserCampaign(ctx context.Context, userID, campaignID uuid.UUID) (bool, error) {
	return r.coupons().ExistsForUserCampaign(ctx, userID, campaignID)
}
