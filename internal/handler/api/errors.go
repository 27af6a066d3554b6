package api

import (
	"log/slog"
	"net/http"

	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/handler/httperr"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// MsgBottleAlreadyUsed is matched literally by the scanning page
const MsgBottleAlreadyUsed = "Coupon redeemed from this QR"

type errorMapping struct {
	target error
	status int
	code   string
	// empty means the error text itself is shown
	msg string
}

// first match wins
var errorMappings = []errorMapping{
	{commands.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone", "Invalid phone number"},
	{commands.ErrInvalidOTP, http.StatusBadRequest, "invalid_otp", ""},
	{commands.ErrBottleNotFound, http.StatusNotFound, "bottle_not_found", "QR code not found"},
	{commands.ErrInvalidCode, http.StatusNotFound, "invalid_code", "Invalid coupon code"},
	{commands.ErrAlreadyUsed, http.StatusConflict, "already_used", "This QR code has already been used"},
	{commands.ErrAlreadyRedeemedForCampaign, http.StatusConflict, "already_redeemed_for_campaign", "You have already claimed a coupon for this campaign"},
	{commands.ErrAlreadyRedeemed, http.StatusConflict, "already_redeemed", "Coupon has already been redeemed"},
	{commands.ErrCampaignExpired, http.StatusBadRequest, "campaign_expired", "Campaign has expired"},
	{commands.ErrCampaignInactive, http.StatusBadRequest, "campaign_inactive", "Campaign is not active"},

	{commands.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found", "Campaign not found"},
	{queries.ErrCampaignNotFound, http.StatusNotFound, "campaign_not_found", "Campaign not found"},
	{queries.ErrCampaignAccess, http.StatusForbidden, "forbidden", "Insufficient permissions"},
	{commands.ErrStatusConflict, http.StatusConflict, "status_conflict", "Campaign status was changed by another request"},
	{campaign.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition", ""},
	{campaign.ErrMissingDates, http.StatusBadRequest, "missing_dates", ""},
	{campaign.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range", ""},
	{campaign.ErrCampaignCompleted, http.StatusConflict, "campaign_completed", ""},
	{campaign.ErrInvalidStatus, http.StatusBadRequest, "invalid_status", ""},
	{campaign.ErrInvalidName, http.StatusBadRequest, "invalid_request", ""},
	{campaign.ErrInvalidCouponType, http.StatusBadRequest, "invalid_request", ""},
	{campaign.ErrInvalidCouponRange, http.StatusBadRequest, "invalid_request", ""},
	{queries.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date_range", ""},

	{commands.ErrJobNotFound, http.StatusNotFound, "job_not_found", "QR batch job not found"},
	{commands.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity", ""},
	{commands.ErrBatchUnavailable, http.StatusServiceUnavailable, "queue_unavailable", "QR batch queue is unavailable"},

	{commands.ErrInvalidRequest, http.StatusBadRequest, "invalid_request", "Invalid request"},
}

// abortUseCaseError renders usecase errors with their stable code; anything unknown is a 500 with a generic message
func abortUseCaseError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errs.Is(err, m.target) {
			continue
		}
		msg := m.msg
		if msg == "" {
			msg = err.Error()
		}
		httperr.AbortWithError(c, m.status, err, msg, m.code, nil)
		return
	}

	slog.Error("request failed",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"request_id", middleware.GetRequestID(c))
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", "system_error", nil)
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", "invalid_request", nil)
}
