package worker

import (
	"context"
	"log/slog"

	"qr-coupon-server/internal/infra/queue"
	"qr-coupon-server/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Consumer struct {
	qrBatches commands.QRBatchCommands
}

func NewConsumer(qrBatches commands.QRBatchCommands) *Consumer {
	return &Consumer{qrBatches: qrBatches}
}

func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskQRGenerate, c.handleQRGenerate)
}

func (c *Consumer) handleQRGenerate(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseQRGeneratePayload(task)
	if err != nil {
		slog.Warn("worker qr generate unmarshal failed", "error", err.Error())
		return asynq.SkipRetry
	}
	if payload.JobID == uuid.Nil || payload.CampaignID == uuid.Nil || payload.Quantity <= 0 {
		slog.Warn("worker qr generate skip invalid payload",
			"job_id", payload.JobID.String(),
			"campaign_id", payload.CampaignID.String(),
			"quantity", payload.Quantity)
		return asynq.SkipRetry
	}

	slog.Info("worker qr generate started",
		"job_id", payload.JobID.String(),
		"campaign_id", payload.CampaignID.String(),
		"quantity", payload.Quantity)
	return c.qrBatches.Process(ctx, payload)
}
