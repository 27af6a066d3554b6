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

type CampaignReadQueries interface {
	GetCampaignByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Campaigns, error)
	ListCampaigns(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCampaignsParams) ([]sqlc.Campaigns, error)
}

type CampaignReadStore struct {
	queries CampaignReadQueries
	db      sqlc.DBTX
}

func NewCampaignReadStore(queries CampaignReadQueries, db sqlc.DBTX) *CampaignReadStore {
	return &CampaignReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CampaignReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CampaignView, error) {
	row, err := r.queries.GetCampaignByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get campaign by id", err)
	}
	return converter.CampaignViewFromRow(row), nil
}

func (r *CampaignReadStore) List(ctx context.Context, filter queries.CampaignFilter) ([]*queries.CampaignView, error) {
	params := sqlc.ListCampaignsParams{
		ClientID:  pgconv.UUIDPtrToPgtype(filter.ClientID),
		RowLimit:  int32(filter.Limit),  // #nosec G115 -- bounded by ValidateLimit
		RowOffset: int32(filter.Offset), // #nosec G115 -- bounded by ValidateOffset
	}
	if filter.Status != nil {
		params.Status = sqlc.NullCampaignStatus{CampaignStatus: sqlc.CampaignStatus(*filter.Status), Valid: true}
	}

	rows, err := r.queries.ListCampaigns(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaigns", err)
	}

	views := make([]*queries.CampaignView, 0, len(rows))
	for _, row := range rows {
		views = append(views, converter.CampaignViewFromRow(row))
	}
	return views, nil
}
