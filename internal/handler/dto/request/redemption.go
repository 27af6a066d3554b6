package request

import (
	"qr-coupon-server/internal/usecase/commands"
)

type RedeemRequest struct {
	Phone   string `json:"phone" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
	QRToken string `json:"qr_token" binding:"required"`
	Name    string `json:"name" binding:"omitempty,max=200"`
}

func (r RedeemRequest) ToInput() commands.RedeemInput {
	return commands.RedeemInput{
		Phone:   r.Phone,
		OTP:     r.OTP,
		QRToken: r.QRToken,
		Name:    r.Name,
	}
}

type BottleCheckRequest struct {
	QRToken string `json:"qr_token" binding:"required"`
}

type MarkRedeemedRequest struct {
	Code string `json:"code" binding:"required"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}
