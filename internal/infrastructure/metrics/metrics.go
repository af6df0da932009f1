package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the background workers. HTTP request
// metrics live in the router middleware.
type Metrics struct {
	// Sweep metrics
	SweepsRun              prometheus.Counter
	SweepDuration          prometheus.Histogram
	SweepInstallmentsSeen  prometheus.Counter
	SweepInstallmentsDirty prometheus.Counter
	SweepFailures          prometheus.Counter

	// Outbox publisher metrics
	EventsPublished    *prometheus.CounterVec
	EventPublishErrors prometheus.Counter
	OutboxLag          prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SweepsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loans_sweeps_run_total",
			Help: "Total number of penalty sweeps executed",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "loans_sweep_duration_seconds",
			Help:    "Duration of penalty sweep runs",
			Buckets: prometheus.DefBuckets,
		}),
		SweepInstallmentsSeen: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loans_sweep_installments_processed_total",
			Help: "Total installments examined by the penalty sweep",
		}),
		SweepInstallmentsDirty: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loans_sweep_installments_updated_total",
			Help: "Total installments updated by the penalty sweep",
		}),
		SweepFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loans_sweep_failures_total",
			Help: "Total installment updates that failed during sweeps",
		}),

		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loans_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		EventPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loans_event_publish_errors_total",
			Help: "Total outbox events that failed to publish",
		}),
		OutboxLag: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loans_outbox_pending_events",
			Help: "Number of unpublished events seen in the last poll",
		}),
	}
}
