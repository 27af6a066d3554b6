package queries

import (
	"context"
	"time"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	defaultDailyWindow = 30 * 24 * time.Hour
	maxDailyWindow     = 366 * 24 * time.Hour
)

var ErrInvalidDateRange = errs.New("invalid date range")

type AnalyticsReadStore interface {
	CampaignStats(ctx context.Context, campaignID uuid.UUID) (*CampaignStats, error)
	DailyClaims(ctx context.Context, campaignID uuid.UUID, from, to time.Time) ([]*DailyClaims, error)
	Overview(ctx context.Context, clientID *uuid.UUID) (*Overview, error)
}

type AnalyticsQueries interface {
	CampaignStats(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID) (*CampaignStats, error)
	DailyClaims(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID, from, to time.Time) ([]*DailyClaims, error)
	// Overview is platform wide for admins and limited to the viewer's campaigns for clients
	Overview(ctx context.Context, viewer *auth.Principal) (*Overview, error)
}

type analyticsQueriesImpl struct {
	repo      AnalyticsReadStore
	campaigns CampaignReadStore
	clock     clock.Clock
}

func NewAnalyticsQueries(repo AnalyticsReadStore, campaigns CampaignReadStore, clk clock.Clock) AnalyticsQueries {
	return &analyticsQueriesImpl{repo: repo, campaigns: campaigns, clock: clk}
}

func (q *analyticsQueriesImpl) CampaignStats(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID) (*CampaignStats, error) {
	if _, err := visibleCampaign(ctx, q.campaigns, viewer, campaignID); err != nil {
		return nil, err
	}

	stats, err := q.repo.CampaignStats(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	stats.ClaimRate = ratio(stats.UsedBottles, stats.TotalBottles)
	stats.RedemptionRate = ratio(stats.CouponsRedeemed, stats.CouponsIssued)
	return stats, nil
}

// DailyClaims defaults to the last 30 days when the range is open
func (q *analyticsQueriesImpl) DailyClaims(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID, from, to time.Time) ([]*DailyClaims, error) {
	if to.IsZero() {
		to = q.clock.Now()
	}
	if from.IsZero() {
		from = to.Add(-defaultDailyWindow)
	}
	if to.Before(from) || to.Sub(from) > maxDailyWindow {
		return nil, ErrInvalidDateRange
	}

	if _, err := visibleCampaign(ctx, q.campaigns, viewer, campaignID); err != nil {
		return nil, err
	}
	return q.repo.DailyClaims(ctx, campaignID, from, to)
}

func (q *analyticsQueriesImpl) Overview(ctx context.Context, viewer *auth.Principal) (*Overview, error) {
	var clientID *uuid.UUID
	switch {
	case viewer.IsAdmin():
	case viewer != nil && viewer.Role == auth.RoleClient && viewer.ClientID != nil:
		clientID = viewer.ClientID
	default:
		return nil, ErrCampaignAccess
	}

	ov, err := q.repo.Overview(ctx, clientID)
	if err != nil {
		return nil, err
	}
	ov.RedemptionRate = ratio(ov.CouponsRedeemed, ov.CouponsIssued)
	return ov, nil
}
