package response

import (
	"time"

	"qr-coupon-server/internal/usecase/commands"

	"github.com/google/uuid"
)

type QRBatchAcceptedResponse struct {
	JobID uuid.UUID `json:"job_id"`
}

type QRBatchJobResponse struct {
	JobID       uuid.UUID `json:"job_id"`
	CampaignID  uuid.UUID `json:"campaign_id"`
	Processed   int       `json:"processed"`
	Total       int       `json:"total"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"download_url,omitempty"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromQRBatchJob(j *commands.QRBatchJob) *QRBatchJobResponse {
	return &QRBatchJobResponse{
		JobID:       j.ID,
		CampaignID:  j.CampaignID,
		Processed:   j.Processed,
		Total:       j.Total,
		Status:      string(j.Status),
		DownloadURL: j.DownloadURL,
		Error:       j.Error,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
