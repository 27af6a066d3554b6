package api

import (
	"net/http"

	reqdto "qr-coupon-server/internal/handler/dto/request"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves both dashboards; scoping to the caller's client happens in the queries
type AnalyticsHandler struct {
	q queries.AnalyticsQueries
}

func NewAnalyticsHandler(q queries.AnalyticsQueries) *AnalyticsHandler {
	return &AnalyticsHandler{q: q}
}

// @Summary Campaign statistics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} resdto.CampaignStatsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/campaigns/{id}/stats [get]
func (h *AnalyticsHandler) CampaignStats(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	stats, err := h.q.CampaignStats(c.Request.Context(), viewer, id)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignStats(stats))
}

// @Summary Daily claims
// @Description Coupons issued and redeemed per day; defaults to the last 30 days
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param from query string false "YYYY-MM-DD or RFC3339"
// @Param to query string false "YYYY-MM-DD or RFC3339"
// @Success 200 {object} map[string][]resdto.DailyClaimsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/campaigns/{id}/daily [get]
func (h *AnalyticsHandler) DailyClaims(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var query reqdto.DailyClaimsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	from, to, err := query.Range()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	rows, err := h.q.DailyClaims(c.Request.Context(), viewer, id, from, to)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": resdto.FromDailyClaims(rows)})
}

// @Summary Overview
// @Description Platform totals for admins, own campaigns for clients
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OverviewResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ov, err := h.q.Overview(c.Request.Context(), viewer)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOverview(ov))
}
