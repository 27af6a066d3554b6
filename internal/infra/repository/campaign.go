package repository

import (
	"context"

	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/repository/converter"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CampaignWriteQueries interface {
	CreateCampaign(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCampaignParams) (sqlc.Campaigns, error)
	UpdateCampaignDetails(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateCampaignDetailsParams) (int64, error)
	UpdateCampaignStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateCampaignStatusParams) (int64, error)
	DeleteCampaign(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	IncrementCampaignScanCount(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	GetCampaignForShare(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Campaigns, error)
}

type CampaignRepository struct {
	queries CampaignWriteQueries
	db      sqlc.DBTX
}

func NewCampaignRepository(queries CampaignWriteQueries, db sqlc.DBTX) *CampaignRepository {
	return &CampaignRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	if _, err := r.queries.CreateCampaign(ctx, r.db, converter.CampaignToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create campaign", err)
	}
	return nil
}

func (r *CampaignRepository) UpdateDetails(ctx context.Context, c *campaign.Campaign) error {
	n, err := r.queries.UpdateCampaignDetails(ctx, r.db, converter.CampaignToUpdateDetailsParams(c))
	if err != nil {
		return infra.WrapRepoErr("failed to update campaign", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CampaignRepository) ChangeStatus(ctx context.Context, c *campaign.Campaign, from campaign.Status) (bool, error) {
	n, err := r.queries.UpdateCampaignStatus(ctx, r.db, sqlc.UpdateCampaignStatusParams{
		Status:     sqlc.CampaignStatus(c.Status()),
		IsActive:   c.IsActive(),
		UpdatedAt:  pgconv.TimeToPgtype(c.UpdatedAt()),
		ID:         c.ID(),
		FromStatus: sqlc.CampaignStatus(from),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to update campaign status", err)
	}
	return n == 1, nil
}

// FOR SHARE conflicts with the status UPDATE, so a pause either lands before this read or waits for the commit
func (r *CampaignRepository) LockForRedemption(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	row, err := r.queries.GetCampaignForShare(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock campaign", err)
	}
	return converter.CampaignFromView(converter.CampaignViewFromRow(row)), nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.DeleteCampaign(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete campaign", err)
	}
	return n > 0, nil
}

func (r *CampaignRepository) IncrementScanCount(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.IncrementCampaignScanCount(ctx, r.db, id); err != nil {
		return infra.WrapRepoErr("failed to increment scan count", err)
	}
	return nil
}
