package components

import (
	"qr-coupon-server/internal/infra/readstore"
	sqlc "qr-coupon-server/internal/infra/sqlc/generated"
	"qr-coupon-server/internal/infra/uow"
	"qr-coupon-server/internal/usecase/queries"
	"qr-coupon-server/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Campaign
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CampaignReadQueries)),
		),
		fx.Annotate(
			readstore.NewCampaignReadStore,
			fx.As(new(queries.CampaignReadStore)),
		),
		// Coupon
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CouponReadQueries)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		// Analytics
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.AnalyticsReadQueries)),
		),
		fx.Annotate(
			readstore.NewAnalyticsReadStore,
			fx.As(new(queries.AnalyticsReadStore)),
		),
	),
)

// write repositories are built per transaction inside the unit of work
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
