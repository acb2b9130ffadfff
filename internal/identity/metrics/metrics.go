package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for Fayda ID verification.
type Metrics struct {
	// Verification outcomes by entry point and outcome
	VerificationOutcome *prometheus.CounterVec

	// Registry store latency by backend and operation
	StoreLatency *prometheus.HistogramVec

	// Audit events that could not be published
	AuditPublishFailures prometheus.Counter
}

// New registers the identity metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the identity metrics with reg. Tests pass a
// fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VerificationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fayda_verification_outcomes_total",
			Help: "Total Fayda ID verifications by entry point and outcome",
		}, []string{"entry", "outcome"}), // entry: "registry", "profile"

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fayda_registry_store_duration_seconds",
			Help:    "Duration of registry store operations by backend and operation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"backend", "op"}),

		AuditPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "fayda_audit_publish_failures_total",
			Help: "Total verification audit events that failed to publish",
		}),
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(entry, outcome string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(entry, outcome).Inc()
	}
}

// ObserveStoreLatency records the duration of a store operation.
func (m *Metrics) ObserveStoreLatency(backend, op string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(backend, op).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAuditFailures() {
	if m != nil {
		m.AuditPublishFailures.Inc()
	}
}
