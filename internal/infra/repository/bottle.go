package repository

import (
	"context"
	"time"

	"qr-coupon-server/internal/infra"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BottleWriteQueries interface {
	ClaimBottle(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimBottleParams) (int64, error)
	InsertBottleTokens(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertBottleTokensParams) (int64, error)
}

type BottleRepository struct {
	queries BottleWriteQueries
	db      sqlc.DBTX
}

func NewBottleRepository(queries BottleWriteQueries, db sqlc.DBTX) *BottleRepository {
	return &BottleRepository{
		queries: queries,
		db:      db,
	}
}

// Claim is a compare-and-set on status; exactly one concurrent caller sees true
func (r *BottleRepository) Claim(ctx context.Context, bottleID uuid.UUID, scannedAt time.Time) (bool, error) {
	n, err := r.queries.ClaimBottle(ctx, r.db, sqlc.ClaimBottleParams{
		ScannedAt: pgconv.TimeToPgtype(scannedAt),
		ID:        bottleID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim bottle", err)
	}
	return n == 1, nil
}

// InsertTokens skips tokens that already exist and returns how many rows were written
func (r *BottleRepository) InsertTokens(ctx context.Context, campaignID uuid.UUID, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	n, err := r.queries.InsertBottleTokens(ctx, r.db, sqlc.InsertBottleTokensParams{
		CampaignID: campaignID,
		Tokens:     tokens,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert bottle tokens", err)
	}
	return n, nil
}
