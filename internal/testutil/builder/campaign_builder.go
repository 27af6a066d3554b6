//go:build unit || integration

package builder

import (
	"time"

	"qr-coupon-server/internal/domain/campaign"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseTime is the fixed "now" shared by builders and mock clocks
var BaseTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type CampaignBuilder struct {
	ID         uuid.UUID
	ClientID   *uuid.UUID
	Name       string
	Status     campaign.Status
	StartDate  *time.Time
	EndDate    *time.Time
	CouponType string
	MinValue   decimal.Decimal
	MaxValue   decimal.Decimal
	ScanCount  int64
}

func NewCampaignBuilder() *CampaignBuilder {
	start := BaseTime.AddDate(0, 0, -7)
	end := BaseTime.AddDate(0, 1, 0)
	clientID := uuid.New()
	return &CampaignBuilder{
		ID:         uuid.New(),
		ClientID:   &clientID,
		Name:       "Summer Hydration",
		Status:     campaign.StatusActive,
		StartDate:  &start,
		EndDate:    &end,
		CouponType: "percentage",
		MinValue:   decimal.NewFromInt(5),
		MaxValue:   decimal.NewFromInt(20),
	}
}

func (b *CampaignBuilder) With(mutate func(*CampaignBuilder)) *CampaignBuilder {
	mutate(b)
	return b
}

func (b *CampaignBuilder) WithStatus(s campaign.Status) *CampaignBuilder {
	b.Status = s
	return b
}

func (b *CampaignBuilder) WithDates(start, end *time.Time) *CampaignBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *CampaignBuilder) Offer() (campaign.Offer, error) {
	return campaign.NewOffer(b.CouponType, b.MinValue, b.MaxValue)
}

func (b *CampaignBuilder) Details() (campaign.Details, error) {
	offer, err := b.Offer()
	if err != nil {
		return campaign.Details{}, err
	}
	return campaign.Details{
		Name:      b.Name,
		ClientID:  b.ClientID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Offer:     offer,
	}, nil
}

// BuildNew goes through the draft constructor
func (b *CampaignBuilder) BuildNew() (*campaign.Campaign, error) {
	d, err := b.Details()
	if err != nil {
		return nil, err
	}
	return campaign.New(d, BaseTime)
}

// BuildDomain reconstructs a persisted campaign in the configured status
func (b *CampaignBuilder) BuildDomain() *campaign.Campaign {
	offer, err := b.Offer()
	if err != nil {
		panic(err)
	}
	return campaign.Reconstruct(b.ID, b.ClientID, b.Name, b.Status, b.Status == campaign.StatusActive,
		b.StartDate, b.EndDate, offer, b.ScanCount, BaseTime.AddDate(0, 0, -10), BaseTime.AddDate(0, 0, -10))
}

func (b *CampaignBuilder) BuildInfra() sqlc.Campaigns {
	created := pgconv.TimeToPgtype(BaseTime.AddDate(0, 0, -10))
	return sqlc.Campaigns{
		ID:             b.ID,
		ClientID:       pgconv.UUIDPtrToPgtype(b.ClientID),
		Name:           b.Name,
		Status:         sqlc.CampaignStatus(b.Status),
		IsActive:       b.Status == campaign.StatusActive,
		StartDate:      pgconv.TimePtrToPgtype(b.StartDate),
		EndDate:        pgconv.TimePtrToPgtype(b.EndDate),
		CouponType:     b.CouponType,
		CouponMinValue: pgconv.DecimalToNumeric(b.MinValue),
		CouponMaxValue: pgconv.DecimalToNumeric(b.MaxValue),
		ScanCount:      b.ScanCount,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func (b *CampaignBuilder) BuildView() *queries.CampaignView {
	return &queries.CampaignView{
		ID:             b.ID,
		ClientID:       b.ClientID,
		Name:           b.Name,
		Status:         string(b.Status),
		IsActive:       b.Status == campaign.StatusActive,
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		CouponType:     b.CouponType,
		CouponMinValue: b.MinValue,
		CouponMaxValue: b.MaxValue,
		ScanCount:      b.ScanCount,
		CreatedAt:      BaseTime.AddDate(0, 0, -10),
		UpdatedAt:      BaseTime.AddDate(0, 0, -10),
	}
}

func (b *CampaignBuilder) BuildCreateRequestDTO() map[string]any {
	m := map[string]any{
		"name":             b.Name,
		"coupon_type":      b.CouponType,
		"coupon_min_value": b.MinValue.String(),
		"coupon_max_value": b.MaxValue.String(),
	}
	if b.ClientID != nil {
		m["client_id"] = b.ClientID.String()
	}
	if b.StartDate != nil {
		m["start_date"] = b.StartDate.Format(time.RFC3339)
	}
	if b.EndDate != nil {
		m["end_date"] = b.EndDate.Format(time.RFC3339)
	}
	return m
}
