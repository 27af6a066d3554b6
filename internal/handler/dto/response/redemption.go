package response

import (
	"time"

	"qr-coupon-server/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RedeemResponse struct {
	Success        bool            `json:"success"`
	CouponCode     string          `json:"coupon_code"`
	CouponID       uuid.UUID       `json:"coupon_id"`
	CampaignID     uuid.UUID       `json:"campaign_id"`
	CampaignName   string          `json:"campaign_name"`
	BottleID       uuid.UUID       `json:"bottle_id"`
	GeneratedAt    time.Time       `json:"generated_at"`
	CouponType     string          `json:"coupon_type"`
	CouponMinValue decimal.Decimal `json:"coupon_min_value"`
	CouponMaxValue decimal.Decimal `json:"coupon_max_value"`
}

func FromRedeemResult(r *commands.RedeemResult) *RedeemResponse {
	res := &RedeemResponse{Success: true}
	copyInto(res, r)
	return res
}

type BottleResponse struct {
	BottleID       uuid.UUID       `json:"id"`
	CampaignID     uuid.UUID       `json:"campaign_id"`
	Status         string          `json:"status"`
	CampaignName   string          `json:"campaign_name"`
	CouponType     string          `json:"coupon_type"`
	CouponMinValue decimal.Decimal `json:"coupon_min_value"`
	CouponMaxValue decimal.Decimal `json:"coupon_max_value"`
}

type BottleCheckResponse struct {
	Bottle *BottleResponse `json:"bottle"`
}

func FromBottleCheck(r *commands.BottleCheckResult) *BottleCheckResponse {
	b := &BottleResponse{}
	copyInto(b, r)
	return &BottleCheckResponse{Bottle: b}
}

type MarkRedeemedResponse struct {
	Success    bool      `json:"success"`
	CouponID   uuid.UUID `json:"coupon_id"`
	CouponCode string    `json:"coupon_code"`
	CampaignID uuid.UUID `json:"campaign_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

func FromMarkRedeemed(r *commands.MarkRedeemedResult) *MarkRedeemedResponse {
	res := &MarkRedeemedResponse{Success: true}
	copyInto(res, r)
	return res
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
