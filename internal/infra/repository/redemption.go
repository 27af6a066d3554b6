package repository

import (
	"context"
	"time"

	"qr-coupon-server/internal/infra"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RedemptionWriteQueries interface {
	InsertRedemption(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertRedemptionParams) error
}

type RedemptionRepository struct {
	queries RedemptionWriteQueries
	db      sqlc.DBTX
}

func NewRedemptionRepository(queries RedemptionWriteQueries, db sqlc.DBTX) *RedemptionRepository {
	return &RedemptionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RedemptionRepository) Record(ctx context.Context, couponID uuid.UUID, redeemedAt time.Time) error {
	err := r.queries.InsertRedemption(ctx, r.db, sqlc.InsertRedemptionParams{
		CouponID:   couponID,
		RedeemedAt: pgconv.TimeToPgtype(redeemedAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record redemption", err)
	}
	return nil
}
