// Package metrics collects and exposes Prometheus metrics for the portal.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface used by the API client and the route
// guard. Defined here so callers can take a narrow dependency.
type Recorder interface {
	RecordRefreshAttempt()
	RecordRefreshFailure()
	RecordGuardOutcome(outcome string)
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	refreshAttempts prometheus.Counter
	refreshFailures prometheus.Counter
	guardOutcomes   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		refreshAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_token_refresh_attempts_total",
			Help: "Number of transparent token refresh attempts",
		}),
		refreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_token_refresh_failures_total",
			Help: "Number of failed token refresh attempts",
		}),
		guardOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_route_guard_outcomes_total",
			Help: "Route guard results by outcome (authenticated, unauthenticated)",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.refreshAttempts,
		c.refreshFailures,
		c.guardOutcomes,
	)
	return c
}

func (c *Collector) RecordRefreshAttempt() {
	c.refreshAttempts.Inc()
}

func (c *Collector) RecordRefreshFailure() {
	c.refreshFailures.Inc()
}

func (c *Collector) RecordGuardOutcome(outcome string) {
	c.guardOutcomes.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Noop is a Recorder that discards everything. Used in tests.
type Noop struct{}

func (Noop) RecordRefreshAttempt() {}

func (Noop) RecordRefreshFailure() {}

func (Noop) RecordGuardOutcome(outcome string) {}
