package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a Client.
type Metrics struct {
	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Retry and decode metrics
	RetriesTotal  *prometheus.CounterVec
	PartialsTotal *prometheus.CounterVec
}

// DefaultNamespace prefixes every metric name unless NewMetrics is given
// another one.
const DefaultNamespace = "spschema"

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of API calls by outcome",
			},
			[]string{"method", "verb", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "API call duration in seconds, retries included",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "verb"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Total number of retried API calls by reason",
			},
			[]string{"method", "reason"},
		),
		PartialsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "partial_decodes_total",
				Help:      "Total number of responses accepted with a partial decode",
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observe(method, verb, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, verb, outcome).Inc()
	m.RequestDuration.WithLabelValues(method, verb).Observe(seconds)
}

func (m *Metrics) retry(method, reason string) {
	if m == nil {
		return
	}
	m.RetriesTotal.WithLabelValues(method, reason).Inc()
}

func (m *Metrics) partial(method string) {
	if m == nil {
		return
	}
	m.PartialsTotal.WithLabelValues(method).Inc()
}
