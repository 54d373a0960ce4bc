package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the training domain.
type Metrics struct {
	ModulesCompleted    prometheus.Counter
	TrainingsCompleted  prometheus.Counter
	HydrationsDegraded  prometheus.Counter
	AssessmentHandoffs  prometheus.Counter
	SyncPushesTotal     prometheus.Counter
	SyncRetriesTotal    prometheus.Counter
	SyncFailuresTotal   prometheus.Counter
	SyncDroppedTotal    prometheus.Counter
	SyncPending         prometheus.Gauge
	SyncPushDurationMs  prometheus.Histogram
}

// New creates and registers all training metrics.
func New() *Metrics {
	return &Metrics{
		ModulesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_modules_completed_total",
			Help: "Total number of module completions recorded locally",
		}),
		TrainingsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_sequences_completed_total",
			Help: "Total number of delegates finishing the full module sequence",
		}),
		HydrationsDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_hydrations_degraded_total",
			Help: "Sessions started with an empty completion set because hydration failed",
		}),
		AssessmentHandoffs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_assessment_handoffs_total",
			Help: "Total number of assessment handoffs triggered",
		}),
		SyncPushesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_sync_pushes_total",
			Help: "Completion pushes delivered to the status gateway",
		}),
		SyncRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_sync_retries_total",
			Help: "Retried pushes after a transient gateway failure",
		}),
		SyncFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_sync_failures_total",
			Help: "Pushes abandoned after exhausting retries",
		}),
		SyncDroppedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tutela_training_sync_dropped_total",
			Help: "Pushes dropped because the write-behind inbox was full",
		}),
		SyncPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tutela_training_sync_pending",
			Help: "Completion pushes accepted but not yet durably persisted",
		}),
		SyncPushDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tutela_training_sync_push_duration_ms",
			Help:    "Latency of status gateway pushes in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
	}
}

func (m *Metrics) IncrementModulesCompleted()   { m.ModulesCompleted.Inc() }
func (m *Metrics) IncrementTrainingsCompleted() { m.TrainingsCompleted.Inc() }
func (m *Metrics) IncrementHydrationsDegraded() { m.HydrationsDegraded.Inc() }
func (m *Metrics) IncrementAssessmentHandoffs() { m.AssessmentHandoffs.Inc() }
