package response

import (
	"time"

	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type CampaignStatsResponse struct {
	CampaignID      uuid.UUID `json:"campaign_id"`
	ScanCount       int64     `json:"scan_count"`
	TotalBottles    int64     `json:"total_bottles"`
	UsedBottles     int64     `json:"used_bottles"`
	CouponsIssued   int64     `json:"coupons_issued"`
	CouponsRedeemed int64     `json:"coupons_redeemed"`
	ClaimRate       float64   `json:"claim_rate"`
	RedemptionRate  float64   `json:"redemption_rate"`
}

func FromCampaignStats(s *queries.CampaignStats) *CampaignStatsResponse {
	res := &CampaignStatsResponse{}
	copyInto(res, s)
	return res
}

type DailyClaimsResponse struct {
	Day      string `json:"day"`
	Issued   int64  `json:"issued"`
	Redeemed int64  `json:"redeemed"`
}

func FromDailyClaims(rows []*queries.DailyClaims) []*DailyClaimsResponse {
	res := make([]*DailyClaimsResponse, len(rows))
	for i, r := range rows {
		res[i] = &DailyClaimsResponse{
			Day:      r.Day.UTC().Format(time.DateOnly),
			Issued:   r.Issued,
			Redeemed: r.Redeemed,
		}
	}
	return res
}

type OverviewResponse struct {
	TotalCampaigns  int64   `json:"total_campaigns"`
	ActiveCampaigns int64   `json:"active_campaigns"`
	TotalScans      int64   `json:"total_scans"`
	TotalBottles    int64   `json:"total_bottles"`
	CouponsIssued   int64   `json:"coupons_issued"`
	CouponsRedeemed int64   `json:"coupons_redeemed"`
	RedemptionRate  float64 `json:"redemption_rate"`
}

func FromOverview(o *queries.Overview) *OverviewResponse {
	res := &OverviewResponse{}
	copyInto(res, o)
	return res
}
