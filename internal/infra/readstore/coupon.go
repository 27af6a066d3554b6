package readstore

import (
	"context"

	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/repository/converter"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponReadQueries interface {
	GetCouponByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Coupons, error)
	CouponExistsForUserCampaign(ctx context.Context, db sqlc.DBTX, arg sqlc.CouponExistsForUserCampaignParams) (bool, error)
	ListCouponsByCampaign(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCouponsByCampaignParams) ([]sqlc.ListCouponsByCampaignRow, error)
}

type CouponReadStore struct {
	queries CouponReadQueries
	db      sqlc.DBTX
}

func NewCouponReadStore(queries CouponReadQueries, db sqlc.DBTX) *CouponReadStore {
	return &CouponReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*queries.CouponView, error) {
	row, err := r.queries.GetCouponByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get coupon by code", err)
	}
	return converter.CouponViewFromRow(row), nil
}

func (r *CouponReadStore) ExistsForUserCampaign(ctx context.Context, userID, campaignID uuid.UUID) (bool, error) {
	ok, err := r.queries.CouponExistsForUserCampaign(ctx, r.db, sqlc.CouponExistsForUserCampaignParams{
		UserID:     userID,
		CampaignID: campaignID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check coupon for user and campaign", err)
	}
	return ok, nil
}

// ListByCampaign returns raw phones; masking happens in the query usecase
func (r *CouponReadStore) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int32) ([]*queries.CouponListItem, error) {
	rows, err := r.queries.ListCouponsByCampaign(ctx, r.db, sqlc.ListCouponsByCampaignParams{
		CampaignID: campaignID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons by campaign", err)
	}

	items := make([]*queries.CouponListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &queries.CouponListItem{
			ID:          row.ID,
			Code:        row.Code,
			Status:      string(row.Status),
			UserPhone:   row.UserPhone,
			GeneratedAt: pgconv.TimeFromPgtype(row.GeneratedAt),
			RedeemedAt:  pgconv.TimePtrFromPgtype(row.RedeemedAt),
		})
	}
	return items, nil
}
