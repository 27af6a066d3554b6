package converter

import (
	"qr-coupon-server/internal/domain/campaign"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"
)

func CampaignToCreateParams(c *campaign.Campaign) sqlc.CreateCampaignParams {
	return sqlc.CreateCampaignParams{
		ID:             c.ID(),
		ClientID:       pgconv.UUIDPtrToPgtype(c.ClientID()),
		Name:           c.Name(),
		Status:         sqlc.CampaignStatus(c.Status()),
		IsActive:       c.IsActive(),
		StartDate:      pgconv.TimePtrToPgtype(c.StartDate()),
		EndDate:        pgconv.TimePtrToPgtype(c.EndDate()),
		CouponType:     c.Offer().Type().String(),
		CouponMinValue: pgconv.DecimalToNumeric(c.Offer().MinValue()),
		CouponMaxValue: pgconv.DecimalToNumeric(c.Offer().MaxValue()),
		CreatedAt:      pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func CampaignToUpdateDetailsParams(c *campaign.Campaign) sqlc.UpdateCampaignDetailsParams {
	return sqlc.UpdateCampaignDetailsParams{
		ID:             c.ID(),
		Name:           c.Name(),
		ClientID:       pgconv.UUIDPtrToPgtype(c.ClientID()),
		StartDate:      pgconv.TimePtrToPgtype(c.StartDate()),
		EndDate:        pgconv.TimePtrToPgtype(c.EndDate()),
		CouponType:     c.Offer().Type().String(),
		CouponMinValue: pgconv.DecimalToNumeric(c.Offer().MinValue()),
		CouponMaxValue: pgconv.DecimalToNumeric(c.Offer().MaxValue()),
		UpdatedAt:      pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func CampaignViewFromRow(row sqlc.Campaigns) *queries.CampaignView {
	return &queries.CampaignView{
		ID:             row.ID,
		ClientID:       pgconv.UUIDPtrFromPgtype(row.ClientID),
		Name:           row.Name,
		Status:         string(row.Status),
		IsActive:       row.IsActive,
		StartDate:      pgconv.TimePtrFromPgtype(row.StartDate),
		EndDate:        pgconv.TimePtrFromPgtype(row.EndDate),
		CouponType:     row.CouponType,
		CouponMinValue: pgconv.DecimalFromNumeric(row.CouponMinValue),
		CouponMaxValue: pgconv.DecimalFromNumeric(row.CouponMaxValue),
		ScanCount:      row.ScanCount,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func CampaignFromView(v *queries.CampaignView) *campaign.Campaign {
	return campaign.Reconstruct(
		v.ID,
		v.ClientID,
		v.Name,
		campaign.Status(v.Status),
		v.IsActive,
		v.StartDate,
		v.EndDate,
		campaign.ReconstructOffer(v.CouponType, v.CouponMinValue, v.CouponMaxValue),
		v.ScanCount,
		v.CreatedAt,
		v.UpdatedAt,
	)
}
