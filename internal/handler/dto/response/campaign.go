package response

import (
	"time"

	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CampaignResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClientID       *uuid.UUID      `json:"client_id,omitempty"`
	Name           string          `json:"name"`
	Status         string          `json:"status"`
	IsActive       bool            `json:"is_active"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	CouponType     string          `json:"coupon_type"`
	CouponMinValue decimal.Decimal `json:"coupon_min_value"`
	CouponMaxValue decimal.Decimal `json:"coupon_max_value"`
	ScanCount      int64           `json:"scan_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func FromCampaignView(v *queries.CampaignView) *CampaignResponse {
	res := &CampaignResponse{}
	copyInto(res, v)
	return res
}

func FromCampaignList(views []*queries.CampaignView) []*CampaignResponse {
	res := make([]*CampaignResponse, len(views))
	for i, v := range views {
		res[i] = FromCampaignView(v)
	}
	return res
}

type CampaignStatusResponse struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Changed bool      `json:"changed"`
}

type CouponListItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Status      string     `json:"status"`
	UserPhone   string     `json:"user_phone"`
	GeneratedAt time.Time  `json:"generated_at"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

func FromCouponList(items []*queries.CouponListItem) []*CouponListItemResponse {
	res := []*CouponListItemResponse{}
	copyInto(&res, items)
	return res
}
