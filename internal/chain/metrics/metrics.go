package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the chain module.
type Metrics struct {
	// Purchase verification outcomes by result code
	VerifyOutcome *prometheus.CounterVec

	// Full verification latency including receipt polling
	VerifyLatency prometheus.Histogram
}

// New creates a new Metrics instance with all chain module metrics registered.
func New() *Metrics {
	return &Metrics{
		VerifyOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "credchat_chain_verify_outcomes_total",
			Help: "Total purchase verification outcomes by result",
		}, []string{"result"}), // result: "granted" or a rejection code

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "credchat_chain_verify_duration_seconds",
			Help:    "Duration of purchase verification including receipt polling",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.VerifyOutcome.WithLabelValues(result).Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
