// Package metrics collects Prometheus metrics for the API client and the
// session manager.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the client and session packages report into.
type Recorder interface {
	RecordRequest(operation string, statusCode int, duration time.Duration)
	RecordTransition(state string)
	RecordStaleResponse(operation string)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	stale       *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookit_api_requests_total",
			Help: "API requests by operation and HTTP status (0 for transport errors).",
		}, []string{"operation", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookit_api_request_duration_seconds",
			Help:    "API request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookit_session_transitions_total",
			Help: "Session state transitions by target state.",
		}, []string{"state"}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookit_session_stale_responses_total",
			Help: "Responses discarded because a newer session operation was issued.",
		}, []string{"operation"}),
	}

	reg.MustRegister(c.requests, c.latency, c.transitions, c.stale)

	return c
}

func (c *Collector) RecordRequest(operation string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) RecordTransition(state string) {
	c.transitions.WithLabelValues(state).Inc()
}

func (c *Collector) RecordStaleResponse(operation string) {
	c.stale.WithLabelValues(operation).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRequest(string, int, time.Duration) {}
func (Nop) RecordTransition(string)                  {}
func (Nop) RecordStaleResponse(string)               {}

// Handler serves gatherer in the Prometheus exposition format on /metrics.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
