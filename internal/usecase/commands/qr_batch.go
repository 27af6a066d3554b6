package commands

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"qr-coupon-server/internal/domain/bottle"
	"qr-coupon-server/internal/domain/campaign"
	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/metrics"
	"qr-coupon-server/internal/pkg/clock"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound      = errs.New("qr batch job not found")
	ErrInvalidQuantity  = errs.New("invalid qr batch quantity")
	ErrTokenShortfall   = errs.New("could not generate enough unique qr tokens")
	ErrBatchUnavailable = errs.New("qr batch queue unavailable")
)

// a chunk that keeps colliding is regenerated at most this many times
const maxShortfallRounds = 5

type QRBatchStatus string

const (
	QRBatchQueued     QRBatchStatus = "queued"
	QRBatchProcessing QRBatchStatus = "processing"
	QRBatchCompleted  QRBatchStatus = "completed"
	QRBatchFailed     QRBatchStatus = "failed"
)

type QRBatchJob struct {
	ID          uuid.UUID     `json:"job_id"`
	CampaignID  uuid.UUID     `json:"campaign_id"`
	Total       int           `json:"total"`
	Processed   int           `json:"processed"`
	Status      QRBatchStatus `json:"status"`
	DownloadURL string        `json:"download_url,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// QRBatchTask is the queued unit of work
type QRBatchTask struct {
	JobID      uuid.UUID `json:"job_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	Quantity   int       `json:"quantity"`
}

type QRBatchQueue interface {
	EnqueueQRBatch(ctx context.Context, task QRBatchTask) error
}

// Get returns an infra NOT_FOUND error for unknown or expired jobs
type QRBatchJobStore interface {
	Save(ctx context.Context, job *QRBatchJob) error
	Get(ctx context.Context, id uuid.UUID) (*QRBatchJob, error)
}

type ArtifactStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}

type QRBatchCommands interface {
	Enqueue(ctx context.Context, campaignID uuid.UUID, quantity int) (uuid.UUID, error)
	Status(ctx context.Context, jobID uuid.UUID) (*QRBatchJob, error)
	// Process runs inside the worker
	Process(ctx context.Context, task QRBatchTask) error
}

type qrBatchUseCaseImpl struct {
	uow           shared.UnitOfWork
	queue         QRBatchQueue
	jobs          QRBatchJobStore
	storage       ArtifactStorage
	clock         clock.Clock
	cfg           config.QRBatchConfig
	publicBaseURL string
}

func NewQRBatchUseCase(
	uow shared.UnitOfWork,
	queue QRBatchQueue,
	jobs QRBatchJobStore,
	storage ArtifactStorage,
	clk clock.Clock,
	cfg config.Config,
) QRBatchCommands {
	return &qrBatchUseCaseImpl{
		uow:           uow,
		queue:         queue,
		jobs:          jobs,
		storage:       storage,
		clock:         clk,
		cfg:           cfg.QRBatch,
		publicBaseURL: strings.TrimRight(cfg.Server.PublicBaseURL, "/"),
	}
}

func (uc *qrBatchUseCaseImpl) Enqueue(ctx context.Context, campaignID uuid.UUID, quantity int) (uuid.UUID, error) {
	if quantity < 1 || quantity > uc.cfg.MaxQuantity {
		return uuid.Nil, ErrInvalidQuantity
	}

	c, err := uc.uow.CommandReads().CampaignByID(ctx, campaignID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrCampaignNotFound
		}
		return uuid.Nil, errs.System(err, "failed to load campaign")
	}
	if c.Status() == campaign.StatusCompleted {
		return uuid.Nil, campaign.ErrCampaignCompleted
	}

	now := uc.clock.Now()
	job := &QRBatchJob{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Total:      quantity,
		Status:     QRBatchQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.jobs.Save(ctx, job); err != nil {
		return uuid.Nil, errs.Mark(err, ErrBatchUnavailable)
	}
	if err := uc.queue.EnqueueQRBatch(ctx, QRBatchTask{JobID: job.ID, CampaignID: campaignID, Quantity: quantity}); err != nil {
		uc.fail(ctx, job, "failed to enqueue job")
		return uuid.Nil, errs.Mark(err, ErrBatchUnavailable)
	}

	slog.Info("qr batch enqueued",
		"job_id", job.ID.String(),
		"campaign_id", campaignID.String(),
		"quantity", quantity)
	return job.ID, nil
}

func (uc *qrBatchUseCaseImpl) Status(ctx context.Context, jobID uuid.UUID) (*QRBatchJob, error) {
	job, err := uc.jobs.Get(ctx, jobID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, errs.Mark(err, ErrBatchUnavailable)
	}
	return job, nil
}

func (uc *qrBatchUseCaseImpl) Process(ctx context.Context, task QRBatchTask) error {
	job, err := uc.jobs.Get(ctx, task.JobID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		// status expired while queued; keep going so the batch is not lost
		job = &QRBatchJob{ID: task.JobID, CampaignID: task.CampaignID, Total: task.Quantity, CreatedAt: uc.clock.Now()}
	}
	if job.Status == QRBatchCompleted {
		return nil
	}
	job.Status = QRBatchProcessing
	job.Processed = 0
	uc.save(ctx, job)

	tokens, err := uc.generate(ctx, job)
	if err != nil {
		uc.fail(ctx, job, err.Error())
		return err
	}

	archive, err := buildArchive(tokens, uc.publicBaseURL)
	if err != nil {
		uc.fail(ctx, job, "failed to build archive")
		return errs.Wrap(err, "failed to build archive")
	}

	key := fmt.Sprintf("qr-batches/%s/%s.zip", job.CampaignID, job.ID)
	if err := uc.storage.Upload(ctx, key, archive, "application/zip"); err != nil {
		uc.fail(ctx, job, "failed to upload archive")
		return errs.Wrap(err, "failed to upload archive")
	}
	url, err := uc.storage.PresignedURL(ctx, key)
	if err != nil {
		uc.fail(ctx, job, "failed to sign download url")
		return errs.Wrap(err, "failed to sign download url")
	}

	job.Status = QRBatchCompleted
	job.DownloadURL = url
	job.Error = ""
	uc.save(ctx, job)

	slog.Info("qr batch completed",
		"job_id", job.ID.String(),
		"campaign_id", job.CampaignID.String(),
		"bottles", len(tokens))
	return nil
}

// generate inserts tokens chunk by chunk; each chunk commits on its own so progress is visible
func (uc *qrBatchUseCaseImpl) generate(ctx context.Context, job *QRBatchJob) ([]string, error) {
	chunkSize := uc.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	all := make([]string, 0, job.Total)
	for job.Processed < job.Total {
		want := min(chunkSize, job.Total-job.Processed)
		inserted, err := uc.insertChunk(ctx, job.CampaignID, want)
		if err != nil {
			return nil, err
		}
		all = append(all, inserted...)
		job.Processed += len(inserted)
		uc.save(ctx, job)
		metrics.RecordBottlesGenerated(int64(len(inserted)))
	}
	return all, nil
}

// insertChunk regenerates the shortfall left by token collisions
func (uc *qrBatchUseCaseImpl) insertChunk(ctx context.Context, campaignID uuid.UUID, want int) ([]string, error) {
	out := make([]string, 0, want)
	for round := 0; len(out) < want; round++ {
		if round >= maxShortfallRounds {
			return nil, ErrTokenShortfall
		}
		tokens, err := bottle.NewTokens(want - len(out))
		if err != nil {
			return nil, err
		}

		var n int64
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var werr error
			n, werr = tx.Bottles().InsertTokens(ctx, campaignID, tokens)
			return werr
		})
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return nil, ErrCampaignNotFound
			}
			return nil, errs.System(err, "failed to insert bottle tokens")
		}

		if int(n) == len(tokens) {
			out = append(out, tokens...)
			continue
		}
		// a collision leaves no way to tell which token was skipped, so keep only confirmed ones
		confirmed, err := uc.confirmTokens(ctx, campaignID, tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, confirmed...)
	}
	return out, nil
}

func (uc *qrBatchUseCaseImpl) confirmTokens(ctx context.Context, campaignID uuid.UUID, tokens []string) ([]string, error) {
	reads := uc.uow.CommandReads()
	confirmed := make([]string, 0, len(tokens))
	for _, t := range tokens {
		b, err := reads.BottleByToken(ctx, t)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				continue
			}
			return nil, errs.System(err, "failed to confirm bottle token")
		}
		if b.CampaignID == campaignID && b.Status == bottle.StatusUnused {
			confirmed = append(confirmed, t)
		}
	}
	return confirmed, nil
}

func (uc *qrBatchUseCaseImpl) save(ctx context.Context, job *QRBatchJob) {
	job.UpdatedAt = uc.clock.Now()
	if err := uc.jobs.Save(ctx, job); err != nil {
		slog.Warn("failed to save qr batch progress",
			"job_id", job.ID.String(),
			"error", err.Error())
	}
}

func (uc *qrBatchUseCaseImpl) fail(ctx context.Context, job *QRBatchJob, msg string) {
	job.Status = QRBatchFailed
	job.Error = msg
	uc.save(ctx, job)
	slog.Error("qr batch failed",
		"job_id", job.ID.String(),
		"campaign_id", job.CampaignID.String(),
		"error", msg)
}

func buildArchive(tokens []string, baseURL string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	f, err := zw.Create("tokens.csv")
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"token", "url"}); err != nil {
		return nil, err
	}
	for _, t := range tokens {
		if err := w.Write([]string{t, ScanURL(baseURL, t)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ScanURL is the address printed into each QR code
func ScanURL(baseURL, token string) string {
	return baseURL + "/scan/" + token
}
