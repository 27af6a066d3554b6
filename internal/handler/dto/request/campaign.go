package request

import (
	"strings"
	"time"

	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errs.New("dates must be YYYY-MM-DD or RFC3339")

type CreateCampaignRequest struct {
	Name           string          `json:"name" binding:"required,max=200"`
	ClientID       *uuid.UUID      `json:"client_id"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
	CouponType     string          `json:"coupon_type" binding:"required,oneof=percentage fixed"`
	CouponMinValue decimal.Decimal `json:"coupon_min_value"`
	CouponMaxValue decimal.Decimal `json:"coupon_max_value"`
}

func (r CreateCampaignRequest) ToInput() commands.CreateCampaignInput {
	return commands.CreateCampaignInput{
		Name:           r.Name,
		ClientID:       r.ClientID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		CouponType:     r.CouponType,
		CouponMinValue: r.CouponMinValue,
		CouponMaxValue: r.CouponMaxValue,
	}
}

// UpdateCampaignRequest leaves absent fields untouched
type UpdateCampaignRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=200"`
	ClientID       *uuid.UUID       `json:"client_id"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	CouponType     *string          `json:"coupon_type" binding:"omitempty,oneof=percentage fixed"`
	CouponMinValue *decimal.Decimal `json:"coupon_min_value"`
	CouponMaxValue *decimal.Decimal `json:"coupon_max_value"`
}

func (r UpdateCampaignRequest) ToInput() commands.UpdateCampaignInput {
	return commands.UpdateCampaignInput{
		Name:           r.Name,
		ClientID:       r.ClientID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		CouponType:     r.CouponType,
		CouponMinValue: r.CouponMinValue,
		CouponMaxValue: r.CouponMaxValue,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CampaignListQuery struct {
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func (q CampaignListQuery) ToFilter() (queries.CampaignFilter, error) {
	f := queries.CampaignFilter{Limit: q.Limit, Offset: q.Offset}
	if s := strings.TrimSpace(q.Status); s != "" {
		f.Status = &s
	}
	if q.ClientID != "" {
		id, err := uuid.Parse(q.ClientID)
		if err != nil {
			return queries.CampaignFilter{}, errs.Wrap(err, "invalid client_id")
		}
		f.ClientID = &id
	}
	return f, nil
}

type PageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type DailyClaimsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Range returns zero times for absent bounds; a bare date for "to" covers that whole day
func (q DailyClaimsQuery) Range() (from, to time.Time, err error) {
	if from, err = parseDate(q.From, false); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = parseDate(q.To, true); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
