package converter

import (
	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/coupon"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"
)

func CouponToInsertParams(c *coupon.Coupon) sqlc.InsertCouponParams {
	return sqlc.InsertCouponParams{
		ID:          c.ID(),
		Code:        c.Code().String(),
		BottleID:    c.BottleID(),
		CampaignID:  c.CampaignID(),
		UserID:      c.UserID(),
		GeneratedAt: pgconv.TimeToPgtype(c.GeneratedAt()),
	}
}

func CouponViewFromRow(row sqlc.Coupons) *queries.CouponView {
	return &queries.CouponView{
		ID:          row.ID,
		Code:        row.Code,
		BottleID:    row.BottleID,
		CampaignID:  row.CampaignID,
		UserID:      row.UserID,
		Status:      string(row.Status),
		GeneratedAt: pgconv.TimeFromPgtype(row.GeneratedAt),
		RedeemedAt:  pgconv.TimePtrFromPgtype(row.RedeemedAt),
	}
}

func CouponFromView(v *queries.CouponView) *coupon.Coupon {
	return coupon.Reconstruct(
		v.ID,
		coupon.Code(v.Code),
		v.BottleID,
		v.CampaignID,
		v.UserID,
		coupon.Status(v.Status),
		v.GeneratedAt,
		v.RedeemedAt,
	)
}

func BottleViewFromRow(row sqlc.Bottles) *queries.BottleView {
	return &queries.BottleView{
		ID:         row.ID,
		CampaignID: row.CampaignID,
		QRToken:    row.QrToken,
		Status:     string(row.Status),
		ScannedAt:  pgconv.TimePtrFromPgtype(row.ScannedAt),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func BottleFromView(v *queries.BottleView) *bottle.Bottle {
	return &bottle.Bottle{
		ID:         v.ID,
		CampaignID: v.CampaignID,
		Token:      v.QRToken,
		Status:     bottle.Status(v.Status),
		ScannedAt:  v.ScannedAt,
	}
}
