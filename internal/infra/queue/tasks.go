package queue

import (
	"encoding/json"

	"qr-coupon-server/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

const (
	// TaskQRGenerate creates the bottles of one QR batch
	TaskQRGenerate = "qr:generate"
)

type QRGeneratePayload = commands.QRBatchTask

func NewQRGenerateTask(payload QRGeneratePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQRGenerate, body), nil
}

func ParseQRGeneratePayload(task *asynq.Task) (QRGeneratePayload, error) {
	var payload QRGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QRGeneratePayload{}, err
	}
	return payload, nil
}
