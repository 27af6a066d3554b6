package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignView represents read-optimized campaign data
type CampaignView struct {
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

// BottleView represents a single printed QR unit
type BottleView struct {
	ID         uuid.UUID  `json:"id"`
	CampaignID uuid.UUID  `json:"campaign_id"`
	QRToken    string     `json:"qr_token"`
	Status     string     `json:"status"`
	ScannedAt  *time.Time `json:"scanned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CouponView represents read-optimized coupon data
type CouponView struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	BottleID    uuid.UUID  `json:"bottle_id"`
	CampaignID  uuid.UUID  `json:"campaign_id"`
	UserID      uuid.UUID  `json:"user_id"`
	Status      string     `json:"status"`
	GeneratedAt time.Time  `json:"generated_at"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

// CouponListItem is the dashboard row; the phone is masked before it leaves the usecase
type CouponListItem struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Status      string     `json:"status"`
	UserPhone   string     `json:"user_phone"`
	GeneratedAt time.Time  `json:"generated_at"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

type CampaignStats struct {
	CampaignID      uuid.UUID `json:"campaign_id"`
	ScanCount       int64     `json:"scan_count"`
	TotalBottles    int64     `json:"total_bottles"`
	UsedBottles     int64     `json:"used_bottles"`
	CouponsIssued   int64     `json:"coupons_issued"`
	CouponsRedeemed int64     `json:"coupons_redeemed"`
	ClaimRate       float64   `json:"claim_rate"`
	RedemptionRate  float64   `json:"redemption_rate"`
}

type DailyClaims struct {
	Day      time.Time `json:"day"`
	Issued   int64     `json:"issued"`
	Redeemed int64     `json:"redeemed"`
}

type Overview struct {
	TotalCampaigns  int64   `json:"total_campaigns"`
	ActiveCampaigns int64   `json:"active_campaigns"`
	TotalScans      int64   `json:"total_scans"`
	TotalBottles    int64   `json:"total_bottles"`
	CouponsIssued   int64   `json:"coupons_issued"`
	CouponsRedeemed int64   `json:"coupons_redeemed"`
	RedemptionRate  float64 `json:"redemption_rate"`
}

type CampaignFilter struct {
	ClientID *uuid.UUID
	Status   *string
	Limit    int
	Offset   int
}
