package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/otp"
	"qr-coupon-server/internal/infra/repository"
	"qr-coupon-server/internal/metrics"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCodeMaxAttempts = 5

type OTPService interface {
	Send(ctx context.Context, phone string) error
	Validate(ctx context.Context, phone, code string) (otp.Result, error)
}

type RedeemInput struct {
	Phone   string
	OTP     string
	QRToken string
	Name    string
}

type RedeemResult struct {
	CouponID       uuid.UUID
	CouponCode     string
	CampaignID     uuid.UUID
	CampaignName   string
	BottleID       uuid.UUID
	GeneratedAt    time.Time
	CouponType     string
	CouponMinValue decimal.Decimal
	CouponMaxValue decimal.Decimal
}

type MarkRedeemedResult struct {
	CouponID   uuid.UUID
	CouponCode string
	CampaignID uuid.UUID
	RedeemedAt time.Time
}

type RedemptionCommands interface {
	Redeem(ctx context.Context, in RedeemInput) (*RedeemResult, error)
	MarkRedeemed(ctx context.Context, code string) (*MarkRedeemedResult, error)
}

type redemptionUseCaseImpl struct {
	uow             shared.UnitOfWork
	otp             OTPService
	codes           coupon.Generator
	clock           clock.Clock
	countryCode     string
	codeMaxAttempts int
}

func NewRedemptionUseCase(
	uow shared.UnitOfWork,
	otpService OTPService,
	codes coupon.Generator,
	clk clock.Clock,
	cfg config.Config,
) RedemptionCommands {
	attempts := cfg.Coupon.CodeMaxAttempts
	if attempts <= 0 {
		attempts = defaultCodeMaxAttempts
	}
	return &redemptionUseCaseImpl{
		uow:             uow,
		otp:             otpService,
		codes:           codes,
		clock:           clk,
		countryCode:     cfg.OTP.DefaultCountryCode,
		codeMaxAttempts: attempts,
	}
}

func (uc *redemptionUseCaseImpl) Redeem(ctx context.Context, in RedeemInput) (res *RedeemResult, err error) {
	started := time.Now()
	defer func() {
		metrics.RecordRedemption(metrics.OperationRedeem, Outcome(err), started)
	}()

	phone, err := consumer.NewPhone(in.Phone, uc.countryCode)
	if err != nil {
		return nil, ErrInvalidPhone
	}
	token, err := bottle.NormalizeToken(in.QRToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	if strings.TrimSpace(in.OTP) == "" {
		return nil, errs.Mark(errs.New("otp is required"), ErrInvalidRequest)
	}

	verdict, err := uc.otp.Validate(ctx, phone.String(), in.OTP)
	if err != nil {
		return nil, errs.System(err, "otp validation failed")
	}
	if !verdict.Valid {
		return nil, otpRejected(verdict.Message)
	}

	b, c, err := uc.loadBottle(ctx, token)
	if err != nil {
		return nil, err
	}
	if b.IsUsed() {
		return nil, ErrAlreadyUsed
	}

	now := uc.clock.Now()
	if err := c.AcceptsRedemptions(now); err != nil {
		return nil, err
	}

	var (
		issued  *coupon.Coupon
		userID  uuid.UUID
		claimed bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed = false

		// the pre-check above ran without a lock; an admin pause may have committed since
		locked, werr := tx.Campaigns().LockForRedemption(ctx, c.ID())
		if werr != nil {
			return werr
		}
		if werr := locked.AcceptsRedemptions(now); werr != nil {
			return werr
		}

		id, werr := tx.Consumers().UpsertByPhone(ctx, phone, consumer.NormalizeDisplayName(in.Name))
		if werr != nil {
			return werr
		}
		userID = id

		exists, werr := tx.Reads().CouponExistsForUserCampaign(ctx, userID, c.ID())
		if werr != nil {
			return werr
		}
		if exists {
			return ErrAlreadyRedeemedForCampaign
		}

		ok, werr := tx.Bottles().Claim(ctx, b.ID, now)
		if werr != nil {
			return werr
		}
		if !ok {
			return ErrAlreadyUsed
		}
		claimed = true

		issued, werr = uc.issueCoupon(ctx, tx, b, userID, now)
		return werr
	})
	if err != nil {
		err = classifyRedeemError(err)
		if claimed && errs.Is(err, ErrSystem) {
			slog.Error("redemption rolled back after bottle claim",
				"severity", "critical",
				"bottle_id", b.ID.String(),
				"campaign_id", c.ID().String(),
				"user_id", userID.String(),
				"error", err.Error())
		}
		return nil, err
	}

	slog.Info("coupon issued",
		"coupon_id", issued.ID().String(),
		"bottle_id", b.ID.String(),
		"campaign_id", c.ID().String())

	offer := c.Offer()
	return &RedeemResult{
		CouponID:       issued.ID(),
		CouponCode:     issued.Code().String(),
		CampaignID:     c.ID(),
		CampaignName:   c.Name(),
		BottleID:       b.ID,
		GeneratedAt:    issued.GeneratedAt(),
		CouponType:     offer.Type().String(),
		CouponMinValue: offer.MinValue(),
		CouponMaxValue: offer.MaxValue(),
	}, nil
}

// issueCoupon retries only on code collisions; every other insert failure aborts the transaction
func (uc *redemptionUseCaseImpl) issueCoupon(ctx context.Context, tx shared.Tx, b *bottle.Bottle, userID uuid.UUID, now time.Time) (*coupon.Coupon, error) {
	var c *coupon.Coupon
	for attempt := 1; attempt <= uc.codeMaxAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return nil, err
		}
		if c == nil {
			c = coupon.Issue(code, b.ID, b.CampaignID, userID, now)
		} else {
			c.WithCode(code)
		}

		inserted, err := tx.Coupons().Insert(ctx, c)
		if err != nil {
			return nil, err
		}
		if inserted {
			return c, nil
		}
		slog.Warn("coupon code collision", "attempt", attempt, "bottle_id", b.ID.String())
	}
	return nil, errs.System(errs.New("coupon code space exhausted"), "failed to issue coupon")
}

func (uc *redemptionUseCaseImpl) loadBottle(ctx context.Context, token string) (*bottle.Bottle, *campaign.Campaign, error) {
	reads := uc.uow.CommandReads()
	b, err := reads.BottleByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrBottleNotFound
		}
		return nil, nil, errs.System(err, "failed to load bottle")
	}
	c, err := reads.CampaignByID(ctx, b.CampaignID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrBottleNotFound
		}
		return nil, nil, errs.System(err, "failed to load campaign")
	}
	return b, c, nil
}

func (uc *redemptionUseCaseImpl) MarkRedeemed(ctx context.Context, rawCode string) (res *MarkRedeemedResult, err error) {
	started := time.Now()
	defer func() {
		metrics.RecordRedemption(metrics.OperationMarkRedeemed, Outcome(err), started)
	}()

	code, err := coupon.ParseCode(rawCode)
	if err != nil {
		return nil, ErrInvalidCode
	}

	reads := uc.uow.CommandReads()
	cp, err := reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, errs.System(err, "failed to load coupon")
	}
	if err := cp.EnsureRedeemable(); err != nil {
		return nil, ErrAlreadyRedeemed
	}

	c, err := reads.CampaignByID(ctx, cp.CampaignID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, errs.System(err, "failed to load campaign")
	}
	now := uc.clock.Now()
	if err := c.AcceptsInStoreRedemption(now); err != nil {
		return nil, err
	}
	if err := cp.Redeem(now); err != nil {
		return nil, ErrAlreadyRedeemed
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, werr := tx.Coupons().MarkRedeemed(ctx, cp.ID(), now)
		if werr != nil {
			return werr
		}
		if !ok {
			return ErrAlreadyRedeemed
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrAlreadyRedeemed) {
			return nil, ErrAlreadyRedeemed
		}
		return nil, errs.System(err, "failed to mark coupon redeemed")
	}

	// the coupon status is committed; the audit row gets its own transaction so a failed insert cannot undo it
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Redemptions().Record(ctx, cp.ID(), now)
	})
	if err != nil {
		slog.Warn("failed to record redemption audit row",
			"severity", "data_consistency",
			"coupon_id", cp.ID().String(),
			"error", err.Error())
	}

	slog.Info("coupon redeemed in store",
		"coupon_id", cp.ID().String(),
		"campaign_id", cp.CampaignID().String())

	return &MarkRedeemedResult{
		CouponID:   cp.ID(),
		CouponCode: cp.Code().String(),
		CampaignID: cp.CampaignID(),
		RedeemedAt: now,
	}, nil
}

func classifyRedeemError(err error) error {
	switch {
	case errs.Is(err, ErrAlreadyUsed), errs.Is(err, ErrAlreadyRedeemedForCampaign), errs.Is(err, ErrSystem),
		errs.Is(err, ErrCampaignInactive), errs.Is(err, ErrCampaignExpired):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		// the campaign and its bottles were deleted after the lookup
		return ErrBottleNotFound
	case infra.IsKind(err, infra.KindDuplicateKey):
		if infra.ViolatedConstraint(err) == repository.ConstraintCouponUserCampaign {
			return ErrAlreadyRedeemedForCampaign
		}
		// coupons.bottle_id is unique too; losing that race means the bottle is taken
		return ErrAlreadyUsed
	default:
		return errs.System(err, "redemption transaction failed")
	}
}

// Outcome is the stable code used for metrics labels and error responses
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errs.Is(err, ErrInvalidPhone):
		return "invalid_phone"
	case errs.Is(err, ErrInvalidOTP):
		return "invalid_otp"
	case errs.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errs.Is(err, ErrBottleNotFound):
		return "bottle_not_found"
	case errs.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errs.Is(err, ErrAlreadyUsed):
		return "already_used"
	case errs.Is(err, ErrAlreadyRedeemedForCampaign):
		return "already_redeemed_for_campaign"
	case errs.Is(err, ErrAlreadyRedeemed):
		return "already_redeemed"
	case errs.Is(err, ErrCampaignExpired):
		return "campaign_expired"
	case errs.Is(err, ErrCampaignInactive):
		return "campaign_inactive"
	default:
		return "system_error"
	}
}
