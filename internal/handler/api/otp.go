package api

import (
	"net/http"

	reqdto "qr-coupon-server/internal/handler/dto/request"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type OTPHandler struct {
	otp commands.OTPCommands
}

func NewOTPHandler(otp commands.OTPCommands) *OTPHandler {
	return &OTPHandler{otp: otp}
}

// @Summary Send OTP
// @Description Sends a one-time password to the phone; a new request replaces the previous code
// @Tags otp
// @Accept json
// @Produce json
// @Param request body reqdto.SendOTPRequest true "Phone number"
// @Success 200 {object} resdto.SuccessResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /otp/send [post]
func (h *OTPHandler) Send(c *gin.Context) {
	var req reqdto.SendOTPRequest
	// the rate limiter may already have read the body
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.otp.Send(c.Request.Context(), req.Phone); err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SuccessResponse{Success: true})
}
