package api

import (
	"net/http"

	"qr-coupon-server/internal/domain/auth"
	reqdto "qr-coupon-server/internal/handler/dto/request"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/handler/httperr"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/usecase/commands"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	cmds    commands.CampaignCommands
	q       queries.CampaignQueries
	coupons queries.CouponQueries
}

func NewCampaignHandler(cmds commands.CampaignCommands, q queries.CampaignQueries, coupons queries.CouponQueries) *CampaignHandler {
	return &CampaignHandler{cmds: cmds, q: q, coupons: coupons}
}

// @Summary Create campaign
// @Description Creates a campaign in draft status
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCampaignRequest true "Campaign"
// @Success 201 {object} resdto.CampaignResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req reqdto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.Header("Location", c.Request.URL.Path+"/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromCampaignView(view))
}

// @Summary Get campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} resdto.CampaignResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/campaigns/{id} [get]
func (h *CampaignHandler) Get(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignView(view))
}

// @Summary List campaigns
// @Description Admins may filter by client; clients only ever see their own campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, active, paused or completed"
// @Param client_id query string false "Client ID (admin only)"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string][]resdto.CampaignResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var query reqdto.CampaignListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	views, err := h.q.List(c.Request.Context(), viewer, filter)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": resdto.FromCampaignList(views)})
}

// @Summary Update campaign
// @Description Partial update of name, client, dates and offer; status has its own endpoint
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body reqdto.UpdateCampaignRequest true "Fields to change"
// @Success 200 {object} resdto.CampaignResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/campaigns/{id} [put]
func (h *CampaignHandler) Update(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		abortUseCaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCampaignView(view))
}

// @Summary Change campaign status
// @Description Requesting the current status succeeds without changes
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body reqdto.ChangeStatusRequest true "Target status"
// @Success 200 {object} resdto.CampaignStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/campaigns/{id}/status [post]
func (h *CampaignHandler) ChangeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.cmds.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CampaignStatusResponse{
		ID:      id,
		Status:  result.Status.String(),
		Changed: result.Changed,
	})
}

// @Summary Delete campaign
// @Description Removes the campaign with its bottles, coupons and redemptions
// @Tags campaigns
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List campaign coupons
// @Description Issued coupons with masked phone numbers
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string][]resdto.CouponListItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/campaigns/{id}/coupons [get]
func (h *CampaignHandler) ListCoupons(c *gin.Context) {
	viewer, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var page reqdto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	items, err := h.coupons.ListByCampaign(c.Request.Context(), viewer, id, page.Limit, page.Offset)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": resdto.FromCouponList(items)})
}

func requirePrincipal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, auth.ErrUnauthorized, "Unauthorized", "unauthorized", nil)
		return nil, false
	}
	return p, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", "invalid_request", nil)
		return uuid.Nil, false
	}
	return id, true
}
