package readstore

import (
	"context"

	"qr-coupon-server/internal/infra"
	"qr-coupon-server/internal/infra/repository/converter"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/pkg/pgconv"
	"qr-coupon-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type BottleReadQueries interface {
	GetBottleByToken(ctx context.Context, db sqlc.DBTX, qrToken string) (sqlc.Bottles, error)
	BottleHasRedemption(ctx context.Context, db sqlc.DBTX, bottleID uuid.UUID) (bool, error)
}

type BottleReadStore struct {
	queries BottleReadQueries
	db      sqlc.DBTX
}

func NewBottleReadStore(queries BottleReadQueries, db sqlc.DBTX) *BottleReadStore {
	return &BottleReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BottleReadStore) FindByToken(ctx context.Context, token string) (*queries.BottleView, error) {
	row, err := r.queries.GetBottleByToken(ctx, r.db, token)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bottle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get bottle by token", err)
	}
	return converter.BottleViewFromRow(row), nil
}

func (r *BottleReadStore) HasRedemption(ctx context.Context, bottleID uuid.UUID) (bool, error) {
	ok, err := r.queries.BottleHasRedemption(ctx, r.db, bottleID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check bottle redemption", err)
	}
	return ok, nil
}
