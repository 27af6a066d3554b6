package api

import (
	"net/http"

	reqdto "qr-coupon-server/internal/handler/dto/request"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/handler/httperr"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RedemptionHandler struct {
	redemption commands.RedemptionCommands
	bottles    commands.BottleCommands
}

func NewRedemptionHandler(redemption commands.RedemptionCommands, bottles commands.BottleCommands) *RedemptionHandler {
	return &RedemptionHandler{redemption: redemption, bottles: bottles}
}

// @Summary Redeem a bottle
// @Description Verify the OTP, claim the scanned bottle and issue a coupon
// @Tags redemption
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemRequest true "Redeem request"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /redeem [post]
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.redemption.Redeem(c.Request.Context(), req.ToInput())
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}

// @Summary Check a bottle before redeeming
// @Description Reports whether the scanned QR code can still be claimed
// @Tags redemption
// @Accept json
// @Produce json
// @Param request body reqdto.BottleCheckRequest true "Bottle check request"
// @Success 200 {object} resdto.BottleCheckResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bottles/check [post]
func (h *RedemptionHandler) CheckBottle(c *gin.Context) {
	var req reqdto.BottleCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.bottles.Check(c.Request.Context(), req.QRToken)
	if err != nil {
		// the scanning page switches to its "already used" view on this exact body
		if errs.Is(err, commands.ErrAlreadyUsed) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, MsgBottleAlreadyUsed, "already_used", nil)
			return
		}
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBottleCheck(result))
}

// @Summary Redeem a coupon in store
// @Description Marks an issued coupon as spent at the checkout
// @Tags redemption
// @Accept json
// @Produce json
// @Param request body reqdto.MarkRedeemedRequest true "Coupon code"
// @Success 200 {object} resdto.MarkRedeemedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /coupons/mark-redeemed [post]
func (h *RedemptionHandler) MarkRedeemed(c *gin.Context) {
	var req reqdto.MarkRedeemedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.redemption.MarkRedeemed(c.Request.Context(), req.Code)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMarkRedeemed(result))
}
