package request

type EnqueueQRBatchRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
