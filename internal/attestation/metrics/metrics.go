package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attestation module.
type Metrics struct {
	// Attestation outcomes by result code
	AttestOutcome *prometheus.CounterVec

	// Full attestation pipeline latency
	AttestLatency prometheus.Histogram

	// Groups matched per connected-address scan
	ConnectMatches prometheus.Histogram
}

// New creates a new Metrics instance with all attestation module metrics registered.
func New() *Metrics {
	return &Metrics{
		AttestOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credchat_attestation_outcomes_total",
			Help: "Total attestation outcomes by result",
		}, []string{"result"}), // result: "accepted", "duplicate", or a rejection code

		AttestLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credchat_attestation_duration_seconds",
			Help:    "Duration of the full attestation pipeline including proof verification",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		ConnectMatches: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credchat_attestation_connect_matches",
			Help:    "Number of groups a newly connected address was found in",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
	}
}

// IncrementOutcome records an attestation outcome.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.AttestOutcome.WithLabelValues(result).Inc()
	}
}

// ObserveAttestLatency records the total pipeline duration.
func (m *Metrics) ObserveAttestLatency(d time.Duration) {
	if m != nil {
		m.AttestLatency.Observe(d.Seconds())
	}
}

// ObserveConnectMatches records how many groups matched a connected address.
func (m *Metrics) ObserveConnectMatches(n int) {
	if m != nil {
		m.ConnectMatches.Observe(float64(n))
	}
}
