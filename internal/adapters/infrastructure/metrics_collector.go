package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusLookupMetrics implements the LookupMetrics port with Prometheus collectors
type PrometheusLookupMetrics struct {
	lookups  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewPrometheusLookupMetrics registers the lookup collectors on the given registerer.
// A nil registerer uses the default Prometheus registry.
func NewPrometheusLookupMetrics(reg prometheus.Registerer) *PrometheusLookupMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusLookupMetrics{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_lookups_total",
				Help: "Total number of weather lookups by outcome",
			},
			[]string{"outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_lookup_duration_seconds",
				Help:    "Duration of weather lookups",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "weather_lookups_in_flight",
				Help: "Number of weather lookups currently running",
			},
		),
	}
}

// RecordLookup counts a finished lookup and observes its duration
func (m *PrometheusLookupMetrics) RecordLookup(outcome string, duration time.Duration) {
	m.lookups.WithLabelValues(outcome).Inc()
	m.latency.WithLabelValues(outcome).Observe(duration.Seconds())
}

// LookupStarted increments the in-flight gauge
func (m *PrometheusLookupMetrics) LookupStarted() {
	m.inFlight.Inc()
}

// LookupFinished decrements the in-flight gauge
func (m *PrometheusLookupMetrics) LookupFinished() {
	m.inFlight.Dec()
}
