package repository

import (
	"context"

	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/infra"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ConsumerWriteQueries interface {
	UpsertUserByPhone(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertUserByPhoneParams) (uuid.UUID, error)
}

type ConsumerRepository struct {
	queries ConsumerWriteQueries
	db      sqlc.DBTX
}

func NewConsumerRepository(queries ConsumerWriteQueries, db sqlc.DBTX) *ConsumerRepository {
	return &ConsumerRepository{
		queries: queries,
		db:      db,
	}
}

// UpsertByPhone keeps the first stored name; concurrent callers converge on one row
func (r *ConsumerRepository) UpsertByPhone(ctx context.Context, phone consumer.Phone, name string) (uuid.UUID, error) {
	id, err := r.queries.UpsertUserByPhone(ctx, r.db, sqlc.UpsertUserByPhoneParams{
		Phone: phone.String(),
		Name:  consumer.NormalizeDisplayName(name),
	})
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert user by phone", err)
	}
	return id, nil
}
