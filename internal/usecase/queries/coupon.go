package queries

import (
	"context"

	"qr-coupon-server/internal/domain/auth"
	"qr-coupon-server/internal/domain/consumer"

	"github.com/google/uuid"
)

type CouponReadStore interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int32) ([]*CouponListItem, error)
}

type CouponQueries interface {
	ListByCampaign(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID, limit, offset int) ([]*CouponListItem, error)
}

type couponQueriesImpl struct {
	repo      CouponReadStore
	campaigns CampaignReadStore
}

func NewCouponQueries(repo CouponReadStore, campaigns CampaignReadStore) CouponQueries {
	return &couponQueriesImpl{repo: repo, campaigns: campaigns}
}

func (q *couponQueriesImpl) ListByCampaign(ctx context.Context, viewer *auth.Principal, campaignID uuid.UUID, limit, offset int) ([]*CouponListItem, error) {
	if _, err := visibleCampaign(ctx, q.campaigns, viewer, campaignID); err != nil {
		return nil, err
	}

	limit = ValidateLimit(limit)
	offset = ValidateOffset(offset)
	items, err := q.repo.ListByCampaign(ctx, campaignID, int32(limit), int32(offset)) // #nosec G115 -- bounded above
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.UserPhone = consumer.MaskPhone(it.UserPhone)
	}
	return items, nil
}
