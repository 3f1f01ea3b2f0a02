// Package observability holds the Prometheus metrics for the dashboard
// server and the geocode cache adapter.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec // labels: method, route, code

	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,failure}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	SessionsActive prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.SessionsActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests don't trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_explorer",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route, and status code.",
		}, []string{"method", "route", "code"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_explorer",
			Name:      "geocode_requests_total",
			Help:      "External geocoding lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "location_explorer",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "location_explorer",
			Name:      "sessions_active",
			Help:      "Currently tracked dashboard sessions.",
		}),
	}
}
