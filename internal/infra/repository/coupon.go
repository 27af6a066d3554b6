package repository

import (
	"context"
	"time"

	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/repository/converter"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// Unique constraint that enforces one coupon per user per campaign
const ConstraintCouponUserCampaign = "coupons_user_campaign_key"

type CouponWriteQueries interface {
	InsertCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCouponParams) (int64, error)
	MarkCouponRedeemed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkCouponRedeemedParams) (int64, error)
}

type CouponRepository struct {
	queries CouponWriteQueries
	db      sqlc.DBTX
}

func NewCouponRepository(queries CouponWriteQueries, db sqlc.DBTX) *CouponRepository {
	return &CouponRepository{
		queries: queries,
		db:      db,
	}
}

// Insert returns false on a code collision. Other unique violations surface as DUPLICATE_KEY errors.
func (r *CouponRepository) Insert(ctx context.Context, c *coupon.Coupon) (bool, error) {
	n, err := r.queries.InsertCoupon(ctx, r.db, converter.CouponToInsertParams(c))
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert coupon", err)
	}
	return n == 1, nil
}

func (r *CouponRepository) MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error) {
	n, err := r.queries.MarkCouponRedeemed(ctx, r.db, sqlc.MarkCouponRedeemedParams{
		RedeemedAt: pgconv.TimeToPgtype(redeemedAt),
		ID:         id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark coupon redeemed", err)
	}
	return n == 1, nil
}
