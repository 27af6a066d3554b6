package api

import (
	"net/http"

	reqdto "qr-coupon-server/internal/handler/dto/request"
	resdto "qr-coupon-server/internal/handler/dto/response"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type QRBatchHandler struct {
	cmds commands.QRBatchCommands
}

func NewQRBatchHandler(cmds commands.QRBatchCommands) *QRBatchHandler {
	return &QRBatchHandler{cmds: cmds}
}

// @Summary Generate QR codes
// @Description Queues generation of bottles for a campaign; poll the job for progress
// @Tags qr-batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body reqdto.EnqueueQRBatchRequest true "Quantity"
// @Success 202 {object} resdto.QRBatchAcceptedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/campaigns/{id}/qr-batches [post]
func (h *QRBatchHandler) Enqueue(c *gin.Context) {
	campaignID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.EnqueueQRBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	jobID, err := h.cmds.Enqueue(c.Request.Context(), campaignID, req.Quantity)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.Header("Location", "/api/admin/qr-batches/"+jobID.String())
	c.JSON(http.StatusAccepted, resdto.QRBatchAcceptedResponse{JobID: jobID})
}

// @Summary QR batch status
// @Tags qr-batches
// @Produce json
// @Security BearerAuth
// @Param jobId path string true "Job ID"
// @Success 200 {object} resdto.QRBatchJobResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/qr-batches/{jobId} [get]
func (h *QRBatchHandler) Status(c *gin.Context) {
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	job, err := h.cmds.Status(c.Request.Context(), jobID)
	if err != nil {
		abortUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQRBatchJob(job))
}
