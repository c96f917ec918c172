// Package metrics provides Prometheus metrics for the interaction ledger and its HTTP surface.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Toggle outcomes recorded by RecordLikeToggle.
const (
	ToggleLiked          = "liked"
	ToggleUnliked        = "unliked"
	ToggleAlreadyLiked   = "already_liked"
	ToggleAlreadyUnliked = "already_unliked"
)

// Metrics contains the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	likeToggles       *prometheus.CounterVec
	sideEffectErrors  *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_operations_total",
			Help: "Total number of ledger operations",
		},
		[]string{"operation", "status"}, // operation: toggle_like, create_comment, delete_review; status: success, error
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interaction_operation_duration_seconds",
			Help:    "Time taken for ledger operations including the transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)

	m.likeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "like_toggles_total",
			Help: "Like toggles by target kind and outcome",
		},
		[]string{"kind", "result"},
	)

	m.sideEffectErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_side_effect_errors_total",
			Help: "Best-effort writes that failed after the main transaction committed",
		},
		[]string{"effect"}, // effect: likes_received, credit_points
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

func (m *Metrics) getCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.likeToggles,
		m.sideEffectErrors,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	}
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.getCollectors() {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.getCollectors() {
		collector.Collect(ch)
	}
}

// Registry returns the registry the collectors were registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation records the outcome and duration of a ledger operation.
func (m *Metrics) RecordOperation(operation string, err error, seconds float64) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) RecordLikeToggle(kind, result string) {
	m.likeToggles.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) RecordSideEffectError(effect string) {
	m.sideEffectErrors.WithLabelValues(effect).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
