package commands

import (
	"context"
	"log/slog"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/metrics"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BottleCheckResult struct {
	BottleID       uuid.UUID
	CampaignID     uuid.UUID
	Status         string
	CampaignName   string
	CouponType     string
	CouponMinValue decimal.Decimal
	CouponMaxValue decimal.Decimal
}

type BottleCommands interface {
	// Check is advisory; the atomic claim in Redeem stays the real gate
	Check(ctx context.Context, token string) (*BottleCheckResult, error)
}

type bottleUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewBottleUseCase(uow shared.UnitOfWork) BottleCommands {
	return &bottleUseCaseImpl{uow: uow}
}

func (uc *bottleUseCaseImpl) Check(ctx context.Context, rawToken string) (res *BottleCheckResult, err error) {
	defer func() {
		metrics.RecordBottleCheck(Outcome(err))
	}()

	token, err := bottle.NormalizeToken(rawToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	reads := uc.uow.CommandReads()
	b, err := reads.BottleByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBottleNotFound
		}
		return nil, errs.System(err, "failed to load bottle")
	}

	uc.countScan(ctx, b.CampaignID)

	if b.IsUsed() {
		return nil, ErrAlreadyUsed
	}
	redeemed, err := reads.BottleHasRedemption(ctx, b.ID)
	if err != nil {
		return nil, errs.System(err, "failed to check bottle redemption")
	}
	if redeemed {
		return nil, ErrAlreadyUsed
	}

	c, err := reads.CampaignByID(ctx, b.CampaignID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBottleNotFound
		}
		return nil, errs.System(err, "failed to load campaign")
	}

	offer := c.Offer()
	return &BottleCheckResult{
		BottleID:       b.ID,
		CampaignID:     b.CampaignID,
		Status:         string(b.Status),
		CampaignName:   c.Name(),
		CouponType:     offer.Type().String(),
		CouponMinValue: offer.MinValue(),
		CouponMaxValue: offer.MaxValue(),
	}, nil
}

// countScan never fails the check
func (uc *bottleUseCaseImpl) countScan(ctx context.Context, campaignID uuid.UUID) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Campaigns().IncrementScanCount(ctx, campaignID)
	})
	if err != nil {
		slog.Warn("failed to increment scan count",
			"campaign_id", campaignID.String(),
			"error", err.Error())
	}
}
