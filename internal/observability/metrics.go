package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the service
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Aggregation metrics
	FacetFetches  *prometheus.CounterVec
	FacetDuration *prometheus.HistogramVec
	Builds        *prometheus.CounterVec

	// Upstream breaker state changes
	BreakerTransitions *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so tests can build
// as many as they like without duplicate-registration panics.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		FacetFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "facet_fetches_total",
				Help:      "Facet fetches by facet and status",
			},
			[]string{"facet", "status"},
		),
		FacetDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "facet_fetch_duration_seconds",
				Help:      "Facet fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"facet"},
		),
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_builds_total",
				Help:      "Snapshot builds by role and outcome",
			},
			[]string{"role", "outcome"},
		),
		BreakerTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_breaker_transitions_total",
				Help:      "Circuit breaker state transitions by upstream and target state",
			},
			[]string{"upstream", "to"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.FacetFetches,
		c.FacetDuration,
		c.Builds,
		c.BreakerTransitions,
	)
	return c
}

// ObserveFacet records one facet fetch.
func (c *Collector) ObserveFacet(facet string, ok bool, elapsed time.Duration) {
	status := "ok"
	if !ok {
		status = "unavailable"
	}
	c.FacetFetches.WithLabelValues(facet, status).Inc()
	c.FacetDuration.WithLabelValues(facet).Observe(elapsed.Seconds())
}

// ObserveBuild records the outcome of one snapshot build.
func (c *Collector) ObserveBuild(role string, outcome string) {
	c.Builds.WithLabelValues(role, outcome).Inc()
}

// ObserveBreaker records a circuit breaker state change.
func (c *Collector) ObserveBreaker(upstream, to string) {
	c.BreakerTransitions.WithLabelValues(upstream, to).Inc()
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
