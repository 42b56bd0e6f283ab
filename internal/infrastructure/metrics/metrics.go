package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PricingMetrics covers the calendar write paths and sync runs.
type PricingMetrics struct {
	// Bulk edits
	BulkRowsAppliedTotal  prometheus.CounterVec
	BulkRowsRejectedTotal prometheus.CounterVec
	BulkBatchesTotal      prometheus.CounterVec
	BulkApplyDuration     prometheus.HistogramVec

	// Sync runs
	SyncRunsTotal        prometheus.CounterVec
	SyncDaysFailedTotal  prometheus.CounterVec
	SyncRunDuration      prometheus.HistogramVec

	// Reads
	ResolveRangeDuration prometheus.HistogramVec
}

func NewPricingMetrics() *PricingMetrics {
	return &PricingMetrics{
		BulkRowsAppliedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calendar_bulk_rows_applied_total",
				Help: "Calendar override rows applied through the bulk editor",
			},
			[]string{"property_id", "source"},
		),

		BulkRowsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calendar_bulk_rows_rejected_total",
				Help: "Calendar override rows rejected by bulk validation",
			},
			[]string{"property_id", "source"},
		),

		BulkBatchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calendar_bulk_batches_total",
				Help: "Bulk edit batches by outcome (applied/rejected)",
			},
			[]string{"property_id", "source", "outcome"},
		),

		BulkApplyDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calendar_bulk_apply_duration_seconds",
				Help:    "Time spent applying a bulk edit batch",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"property_id"},
		),

		SyncRunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calendar_sync_runs_total",
				Help: "Sync runs against the external calendar service by outcome",
			},
			[]string{"property_id", "scope", "outcome"},
		),

		SyncDaysFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calendar_sync_days_failed_total",
				Help: "Remote days that failed validation or application during sync",
			},
			[]string{"property_id", "scope"},
		),

		SyncRunDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calendar_sync_run_duration_seconds",
				Help:    "Wall time of one sync run",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"property_id", "scope"},
		),

		ResolveRangeDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calendar_resolve_range_duration_seconds",
				Help:    "Time spent resolving a calendar range",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"property_id"},
		),
	}
}
