package queries

import (
	"context"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCampaignNotFound = errs.New("campaign not found")
	ErrCampaignAccess   = errs.New("campaign access denied")
)

type CampaignReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CampaignView, error)
	List(ctx context.Context, filter CampaignFilter) ([]*CampaignView, error)
}

type CampaignQueries interface {
	GetByID(ctx context.Context, viewer *auth.Principal, id uuid.UUID) (*CampaignView, error)
	List(ctx context.Context, viewer *auth.Principal, filter CampaignFilter) ([]*CampaignView, error)
}

type campaignQueriesImpl struct {
	repo CampaignReadStore
}

func NewCampaignQueries(repo CampaignReadStore) CampaignQueries {
	return &campaignQueriesImpl{repo: repo}
}

func (q *campaignQueriesImpl) GetByID(ctx context.Context, viewer *auth.Principal, id uuid.UUID) (*CampaignView, error) {
	return visibleCampaign(ctx, q.repo, viewer, id)
}

// List pins a client viewer to its own campaigns regardless of the requested filter
func (q *campaignQueriesImpl) List(ctx context.Context, viewer *auth.Principal, filter CampaignFilter) ([]*CampaignView, error) {
	switch {
	case viewer.IsAdmin():
	case viewer != nil && viewer.Role == auth.RoleClient && viewer.ClientID != nil:
		filter.ClientID = viewer.ClientID
	default:
		return nil, ErrCampaignAccess
	}

	if filter.Status != nil {
		st, err := campaign.ParseStatus(*filter.Status)
		if err != nil {
			return nil, err
		}
		s := st.String()
		filter.Status = &s
	}
	filter.Limit = ValidateLimit(filter.Limit)
	filter.Offset = ValidateOffset(filter.Offset)

	return q.repo.List(ctx, filter)
}

// visibleCampaign hides campaigns of other clients behind not found
func visibleCampaign(ctx context.Context, repo CampaignReadStore, viewer *auth.Principal, id uuid.UUID) (*CampaignView, error) {
	view, err := repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	if !viewer.CanView(view.ClientID) {
		return nil, ErrCampaignNotFound
	}
	return view, nil
}
