package readstore

import (
	"context"
	"time"

	"qr-coupon-server/internal/infra"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AnalyticsReadQueries interface {
	GetCampaignStats(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetCampaignStatsRow, error)
	GetDailyClaims(ctx context.Context, db sqlc.DBTX, arg sqlc.GetDailyClaimsParams) ([]sqlc.GetDailyClaimsRow, error)
	GetOverviewStats(ctx context.Context, db sqlc.DBTX, clientID pgtype.UUID) (sqlc.GetOverviewStatsRow, error)
}

type AnalyticsReadStore struct {
	queries AnalyticsReadQueries
	db      sqlc.DBTX
}

func NewAnalyticsReadStore(queries AnalyticsReadQueries, db sqlc.DBTX) *AnalyticsReadStore {
	return &AnalyticsReadStore{
		queries: queries,
		db:      db,
	}
}

// CampaignStats returns raw counters; rates are derived by the query usecase
func (r *AnalyticsReadStore) CampaignStats(ctx context.Context, campaignID uuid.UUID) (*queries.CampaignStats, error) {
	row, err := r.queries.GetCampaignStats(ctx, r.db, campaignID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get campaign stats", err)
	}
	return &queries.CampaignStats{
		CampaignID:      row.CampaignID,
		ScanCount:       row.ScanCount,
		TotalBottles:    row.TotalBottles,
		UsedBottles:     row.UsedBottles,
		CouponsIssued:   row.CouponsIssued,
		CouponsRedeemed: row.CouponsRedeemed,
	}, nil
}

func (r *AnalyticsReadStore) DailyClaims(ctx context.Context, campaignID uuid.UUID, from, to time.Time) ([]*queries.DailyClaims, error) {
	rows, err := r.queries.GetDailyClaims(ctx, r.db, sqlc.GetDailyClaimsParams{
		FromDate:   pgconv.TimeToPgtype(from),
		ToDate:     pgconv.TimeToPgtype(to),
		CampaignID: campaignID,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get daily claims", err)
	}

	days := make([]*queries.DailyClaims, 0, len(rows))
	for _, row := range rows {
		days = append(days, &queries.DailyClaims{
			Day:      pgconv.DateFromPgtype(row.Day),
			Issued:   row.Issued,
			Redeemed: row.Redeemed,
		})
	}
	return days, nil
}

func (r *AnalyticsReadStore) Overview(ctx context.Context, clientID *uuid.UUID) (*queries.Overview, error) {
	row, err := r.queries.GetOverviewStats(ctx, r.db, pgconv.UUIDPtrToPgtype(clientID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get overview stats", err)
	}
	return &queries.Overview{
		TotalCampaigns:  row.TotalCampaigns,
		ActiveCampaigns: row.ActiveCampaigns,
		TotalScans:      row.TotalScans,
		TotalBottles:    row.TotalBottles,
		CouponsIssued:   row.CouponsIssued,
		CouponsRedeemed: row.CouponsRedeemed,
	}, nil
}
