package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics covers one ingestion-and-scoring run end to end.
type PipelineMetrics struct {
	OffersIngestedTotal   prometheus.CounterVec
	OfferErrorsTotal      prometheus.CounterVec
	SourceErrorsTotal     prometheus.CounterVec
	SnapshotsWrittenTotal prometheus.CounterVec
	SnapshotsDedupedTotal prometheus.CounterVec
	MatchesTotal          prometheus.CounterVec
	EvaluationsTotal      prometheus.CounterVec
	RunsTotal             prometheus.CounterVec
	RunDuration           prometheus.HistogramVec
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		OffersIngestedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_offers_ingested_total",
				Help: "Raw offers received from retailer sources",
			},
			[]string{"retailer"},
		),

		OfferErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_offer_errors_total",
				Help: "Offers that failed matching or scoring and were skipped",
			},
			[]string{"retailer"},
		),

		SourceErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_source_errors_total",
				Help: "Retailer sources that errored or returned zero offers",
			},
			[]string{"retailer"},
		),

		SnapshotsWrittenTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_snapshots_written_total",
				Help: "Price snapshots appended to history",
			},
			[]string{"retailer"},
		),

		SnapshotsDedupedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_snapshots_deduped_total",
				Help: "Snapshots skipped as duplicates by timestamp or source hash",
			},
			[]string{"retailer"},
		),

		MatchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_product_matches_total",
				Help: "Product match rows written, by method and status",
			},
			[]string{"method", "status"},
		),

		EvaluationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_evaluations_total",
				Help: "Discount evaluations recorded, by label",
			},
			[]string{"label"},
		),

		RunsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricing_pipeline_runs_total",
				Help: "Pipeline runs finalized, by status",
			},
			[]string{"status"},
		),

		RunDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricing_pipeline_run_duration_seconds",
				Help:    "Wall-clock duration of one pipeline run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"status"},
		),
	}
}
