package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OperationRedeem       = "redeem"
	OperationMarkRedeemed = "mark_redeemed"
)

var (
	// RedemptionAttempts counts engine calls by their outcome code (success, already_used, ...)
	RedemptionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redemption_attempts_total",
			Help: "Redemption engine calls partitioned by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// RedemptionDuration tracks end-to-end latency of engine calls
	RedemptionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "redemption_duration_seconds",
			Help: "Duration of redemption engine calls in seconds",
			Buckets: []float64{
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
			},
		},
		[]string{"operation"},
	)

	BottleChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bottle_checks_total",
			Help: "Bottle pre-scan checks partitioned by outcome",
		},
		[]string{"outcome"},
	)

	QRBatchBottlesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qr_batch_bottles_generated_total",
			Help: "Bottles persisted by QR batch jobs",
		},
	)
)

func RecordRedemption(operation, outcome string, started time.Time) {
	RedemptionAttempts.WithLabelValues(operation, outcome).Inc()
	RedemptionDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func RecordBottleCheck(outcome string) {
	BottleChecks.WithLabelValues(outcome).Inc()
}

func RecordBottlesGenerated(n int64) {
	if n > 0 {
		QRBatchBottlesGenerated.Add(float64(n))
	}
}
