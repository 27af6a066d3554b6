package shared

import (
	"context"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/domain/coupon"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Repositories returned by Tx are bound to the surrounding transaction
type Tx interface {
	Campaigns() CampaignRepository
	Bottles() BottleRepository
	Consumers() ConsumerRepository
	Coupons() CouponRepository
	Redemptions() RedemptionRepository
	Reads() CommandReads
}

// Not-found lookups return an infra.RepositoryError of kind NOT_FOUND
type CommandReads interface {
	CampaignByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
	BottleByToken(ctx context.Context, token string) (*bottle.Bottle, error)
	BottleHasRedemption(ctx context.Context, bottleID uuid.UUID) (bool, error)
	CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	CouponExistsForUserCampaign(ctx context.Context, userID, campaignID uuid.UUID) (bool, error)
}

type CampaignRepository interface {
	Create(ctx context.Context, c *campaign.Campaign) error
	UpdateDetails(ctx context.Context, c *campaign.Campaign) error
	// ChangeStatus applies the transition only while the stored status still equals from
	ChangeStatus(ctx context.Context, c *campaign.Campaign, from campaign.Status) (bool, error)
	// LockForRedemption re-reads the campaign and blocks status changes until the transaction ends
	LockForRedemption(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementScanCount(ctx context.Context, id uuid.UUID) error
}

type BottleRepository interface {
	// Claim flips unused→used; false means another request already claimed it
	Claim(ctx context.Context, bottleID uuid.UUID, scannedAt time.Time) (bool, error)
	InsertTokens(ctx context.Context, campaignID uuid.UUID, tokens []string) (int64, error)
}

type ConsumerRepository interface {
	UpsertByPhone(ctx context.Context, phone consumer.Phone, name string) (uuid.UUID, error)
}

type CouponRepository interface {
	// Insert reports false when the code collides with an existing coupon
	Insert(ctx context.Context, c *coupon.Coupon) (bool, error)
	MarkRedeemed(ctx context.Context, id uuid.UUID, redeemedAt time.Time) (bool, error)
}

type RedemptionRepository interface {
	Record(ctx context.Context, couponID uuid.UUID, redeemedAt time.Time) error
}
