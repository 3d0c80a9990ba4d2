package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the ledger module: ingestion volume,
// idempotent replays, transition outcomes and critical path durations.
type Metrics struct {
	MessagesIngested   prometheus.Counter
	PaymentsIngested   prometheus.Counter
	IngestDuplicates   prometheus.Counter
	Transitions        *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
	RouteStepsRecorded prometheus.Counter
}

// New creates a Metrics instance with all ledger metrics registered.
func New() *Metrics {
	return &Metrics{
		MessagesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remit_messages_ingested_total",
			Help: "Total number of payment messages ingested",
		}),
		PaymentsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remit_payments_ingested_total",
			Help: "Total number of payment instructions ingested",
		}),
		IngestDuplicates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remit_ingest_duplicates_total",
			Help: "Total number of ingest requests answered from an existing batch",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "remit_transitions_total",
			Help: "Total number of requested lifecycle transitions by result",
		}, []string{"kind", "result"}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "remit_transition_duration_seconds",
			Help:    "Duration of Transition operations (lifecycle critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RouteStepsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "remit_route_steps_recorded_total",
			Help: "Total number of routing chain steps recorded",
		}),
	}
}

// ObserveTransition records the outcome and duration of one transition
// request. Result is one of applied, rejected, conflict or error.
func (m *Metrics) ObserveTransition(kind, result string, start time.Time) {
	m.Transitions.WithLabelValues(kind, result).Inc()
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}

// IncrementIngested records one successfully ingested batch.
func (m *Metrics) IncrementIngested(payments int) {
	m.MessagesIngested.Inc()
	m.PaymentsIngested.Add(float64(payments))
}

// IncrementIngestDuplicate records one idempotent ingest replay.
func (m *Metrics) IncrementIngestDuplicate() {
	m.IngestDuplicates.Inc()
}

// IncrementRouteStep records one appended route step.
func (m *Metrics) IncrementRouteStep() {
	m.RouteStepsRecorded.Inc()
}
