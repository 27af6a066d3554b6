package commands

import (
	"context"
	"log/slog"
	"time"

	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/pkg/patch"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCampaignInput struct {
	Name           string
	ClientID       *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	CouponType     string
	CouponMinValue decimal.Decimal
	CouponMaxValue decimal.Decimal
}

// UpdateCampaignInput is a partial update; nil fields keep their stored value
type UpdateCampaignInput struct {
	Name           *string
	ClientID       *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	CouponType     *string
	CouponMinValue *decimal.Decimal
	CouponMaxValue *decimal.Decimal
}

type ChangeStatusResult struct {
	Status  campaign.Status
	Changed bool
}

type CampaignCommands interface {
	Create(ctx context.Context, in CreateCampaignInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCampaignInput) error
	ChangeStatus(ctx context.Context, id uuid.UUID, target string) (*ChangeStatusResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type campaignUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCampaignUseCase(uow shared.UnitOfWork, clk clock.Clock) CampaignCommands {
	return &campaignUseCaseImpl{uow: uow, clock: clk}
}

func (uc *campaignUseCaseImpl) Create(ctx context.Context, in CreateCampaignInput) (uuid.UUID, error) {
	offer, err := campaign.NewOffer(in.CouponType, in.CouponMinValue, in.CouponMaxValue)
	if err != nil {
		return uuid.Nil, err
	}
	c, err := campaign.New(campaign.Details{
		Name:      in.Name,
		ClientID:  in.ClientID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Offer:     offer,
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Campaigns().Create(ctx, c)
	})
	if err != nil {
		return uuid.Nil, errs.System(err, "failed to create campaign")
	}

	slog.Info("campaign created", "campaign_id", c.ID().String(), "name", c.Name())
	return c.ID(), nil
}

func (uc *campaignUseCaseImpl) Update(ctx context.Context, id uuid.UUID, in UpdateCampaignInput) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, derr := tx.Reads().CampaignByID(ctx, id)
		if derr != nil {
			return derr
		}

		current := c.Offer()
		offer, derr := campaign.NewOffer(
			patch.Coalesce(in.CouponType, current.Type().String()),
			patch.Coalesce(in.CouponMinValue, current.MinValue()),
			patch.Coalesce(in.CouponMaxValue, current.MaxValue()),
		)
		if derr != nil {
			return derr
		}

		derr = c.UpdateDetails(campaign.Details{
			Name:      patch.Coalesce(in.Name, c.Name()),
			ClientID:  patch.CoalescePtr(in.ClientID, c.ClientID()),
			StartDate: patch.CoalescePtr(in.StartDate, c.StartDate()),
			EndDate:   patch.CoalescePtr(in.EndDate, c.EndDate()),
			Offer:     offer,
		}, uc.clock.Now())
		if derr != nil {
			return derr
		}
		return tx.Campaigns().UpdateDetails(ctx, c)
	})
	return mapCampaignError(err, "failed to update campaign")
}

func (uc *campaignUseCaseImpl) ChangeStatus(ctx context.Context, id uuid.UUID, rawTarget string) (*ChangeStatusResult, error) {
	target, err := campaign.ParseStatus(rawTarget)
	if err != nil {
		return nil, err
	}

	var res ChangeStatusResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, derr := tx.Reads().CampaignByID(ctx, id)
		if derr != nil {
			return derr
		}
		from := c.Status()

		changed, derr := c.TransitionTo(target, uc.clock.Now())
		if derr != nil {
			return derr
		}
		res = ChangeStatusResult{Status: c.Status(), Changed: changed}
		if !changed {
			return nil
		}

		ok, derr := tx.Campaigns().ChangeStatus(ctx, c, from)
		if derr != nil {
			return derr
		}
		if !ok {
			return ErrStatusConflict
		}
		return nil
	})
	if err != nil {
		return nil, mapCampaignError(err, "failed to change campaign status")
	}

	if res.Changed {
		slog.Info("campaign status changed", "campaign_id", id.String(), "status", res.Status.String())
	}
	return &res, nil
}

func (uc *campaignUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, derr := tx.Campaigns().Delete(ctx, id)
		if derr != nil {
			return derr
		}
		if !ok {
			return ErrCampaignNotFound
		}
		return nil
	})
	if err != nil {
		return mapCampaignError(err, "failed to delete campaign")
	}

	slog.Info("campaign deleted", "campaign_id", id.String())
	return nil
}

// domain and conflict errors pass through; storage failures become system errors
func mapCampaignError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound), errs.Is(err, ErrCampaignNotFound):
		return ErrCampaignNotFound
	case errs.Is(err, ErrStatusConflict):
		return ErrStatusConflict
	case isCampaignDomainError(err):
		return err
	default:
		return errs.System(err, msg)
	}
}

func isCampaignDomainError(err error) bool {
	for _, target := range []error{
		campaign.ErrInvalidStatus,
		campaign.ErrInvalidTransition,
		campaign.ErrMissingDates,
		campaign.ErrInvalidDateRange,
		campaign.ErrCampaignExpired,
		campaign.ErrCampaignInactive,
		campaign.ErrCampaignCompleted,
		campaign.ErrInvalidName,
		campaign.ErrInvalidCouponType,
		campaign.ErrInvalidCouponRange,
	} {
		if errs.Is(err, target) {
			return true
		}
	}
	return false
}
