// Package mock holds generated gomock doubles for the use case ports consumed by handlers.
package mock

//go:generate mockgen -source=../../usecase/commands/redemption.go -destination=commands/redemption_mock.go -package=commandsmock
//go:generate mockgen -source=../../usecase/commands/bottle_check.go -destination=commands/bottle_check_mock.go -package=commandsmock
//go:generate mockgen -source=../../usecase/commands/otp.go -destination=commands/otp_mock.go -package=commandsmock
//go:generate mockgen -source=../../usecase/commands/campaign.go -destination=commands/campaign_mock.go -package=commandsmock
//go:generate mockgen -source=../../usecase/commands/qr_batch.go -destination=commands/qr_batch_mock.go -package=commandsmock
//go:generate mockgen -source=../../usecase/queries/campaign.go -destination=queries/campaign_mock.go -package=queriesmock
//go:generate mockgen -source=../../usecase/queries/analytics.go -destination=queries/analytics_mock.go -package=queriesmock
//go:generate mockgen -source=../../usecase/queries/coupon.go -destination=queries/coupon_mock.go -package=queriesmock
