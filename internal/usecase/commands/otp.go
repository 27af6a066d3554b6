package commands

import (
	"context"

	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
)

type OTPCommands interface {
	Send(ctx context.Context, rawPhone string) error
}

type otpUseCaseImpl struct {
	otp         OTPService
	countryCode string
}

func NewOTPUseCase(otpService OTPService, cfg config.Config) OTPCommands {
	return &otpUseCaseImpl{
		otp:         otpService,
		countryCode: cfg.OTP.DefaultCountryCode,
	}
}

// Send normalizes the phone first so the code is stored under the same key Redeem validates against
func (uc *otpUseCaseImpl) Send(ctx context.Context, rawPhone string) error {
	phone, err := consumer.NewPhone(rawPhone, uc.countryCode)
	if err != nil {
		return ErrInvalidPhone
	}
	if err := uc.otp.Send(ctx, phone.String()); err != nil {
		return errs.System(err, "failed to send otp")
	}
	return nil
}
