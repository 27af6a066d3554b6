package coupon

import (
	"time"

	"qr-coupon-server/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAlreadyRedeemed = errs.New("coupon already redeemed")

type Status string

const (
	StatusActive   Status = "active"
	StatusRedeemed Status = "redeemed"
)

type Coupon struct {
	id          uuid.UUID
	code        Code
	bottleID    uuid.UUID
	campaignID  uuid.UUID
	userID      uuid.UUID
	status      Status
	generatedAt time.Time
	redeemedAt  *time.Time
}

// Issue builds the coupon handed out for a freshly claimed bottle
func Issue(code Code, bottleID, campaignID, userID uuid.UUID, now time.Time) *Coupon {
	return &Coupon{
		id:          uuid.New(),
		code:        code,
		bottleID:    bottleID,
		campaignID:  campaignID,
		userID:      userID,
		status:      StatusActive,
		generatedAt: now,
	}
}

func Reconstruct(id uuid.UUID, code Code, bottleID, campaignID, userID uuid.UUID, status Status, generatedAt time.Time, redeemedAt *time.Time) *Coupon {
	return &Coupon{
		id:          id,
		code:        code,
		bottleID:    bottleID,
		campaignID:  campaignID,
		userID:      userID,
		status:      status,
		generatedAt: generatedAt,
		redeemedAt:  redeemedAt,
	}
}

// WithCode swaps the code after a uniqueness collision
func (c *Coupon) WithCode(code Code) {
	c.code = code
}

func (c *Coupon) EnsureRedeemable() error {
	if c.status != StatusActive {
		return ErrAlreadyRedeemed
	}
	return nil
}

// Redeem flips the coupon to redeemed; persistence must repeat the status check atomically
func (c *Coupon) Redeem(now time.Time) error {
	if err := c.EnsureRedeemable(); err != nil {
		return err
	}
	c.status = StatusRedeemed
	c.redeemedAt = &now
	return nil
}

func (c *Coupon) ID() uuid.UUID          { return c.id }
func (c *Coupon) Code() Code             { return c.code }
func (c *Coupon) BottleID() uuid.UUID    { return c.bottleID }
func (c *Coupon) CampaignID() uuid.UUID  { return c.campaignID }
func (c *Coupon) UserID() uuid.UUID      { return c.userID }
func (c *Coupon) Status() Status         { return c.status }
func (c *Coupon) GeneratedAt() time.Time { return c.generatedAt }
func (c *Coupon) RedeemedAt() *time.Time { return c.redeemedAt }
