package commands

import (
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/domain/coupon"
	"qr-coupon-server/internal/pkg/errs"
)

// Redemption failure taxonomy. Domain sentinels are re-exported so handlers
// only need this package to map errors to responses.
var (
	ErrInvalidRequest             = errs.ErrInvalidRequest
	ErrInvalidPhone               = consumer.ErrInvalidPhone
	ErrInvalidOTP                 = errs.New("invalid otp")
	ErrBottleNotFound             = errs.New("bottle not found")
	ErrInvalidCode                = errs.New("coupon code not found")
	ErrAlreadyUsed                = errs.New("bottle already used")
	ErrAlreadyRedeemedForCampaign = errs.New("coupon already claimed for this campaign")
	ErrAlreadyRedeemed            = coupon.ErrAlreadyRedeemed
	ErrCampaignInactive           = campaign.ErrCampaignInactive
	ErrCampaignExpired            = campaign.ErrCampaignExpired
	ErrSystem                     = errs.ErrSystem

	ErrCampaignNotFound = errs.New("campaign not found")
	ErrStatusConflict   = errs.New("campaign status changed concurrently")
)

// otpRejected keeps the OTP service message as the error text
func otpRejected(message string) error {
	return errs.Mark(errs.New(message), ErrInvalidOTP)
}
