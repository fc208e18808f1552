package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "village_forecast"

// Metrics holds the Prometheus collectors for provider calls and the HTTP front.
type Metrics struct {
	// Provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: operation, outcome
	ProviderDuration *prometheus.HistogramVec // labels: operation

	// HTTP front metrics.
	HTTPRequests       *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration       *prometheus.HistogramVec // labels: method, route
	HTTPActiveRequests prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Tests pass
// a fresh prometheus.NewRegistry() to avoid duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Forecast API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Forecast API call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_active_requests",
			Help:      "Requests currently being served.",
		}),
	}

	reg.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.HTTPRequests,
		m.HTTPDuration,
		m.HTTPActiveRequests,
	)

	return m
}

// RecordProviderCall counts one forecast API call.
func (m *Metrics) RecordProviderCall(_ context.Context, operation, outcome string, d time.Duration) {
	m.ProviderRequests.WithLabelValues(operation, outcome).Inc()
	m.ProviderDuration.WithLabelValues(operation).Observe(d.Seconds())
}
