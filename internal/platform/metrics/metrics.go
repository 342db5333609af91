// Package metrics exposes Prometheus instruments for the todo service on a
// private registry. HTTP middleware records request counts and latency;
// the instrumented store decorator records repository operations.
//
// Usage:
//
//	m := metrics.New()
//	router.Handle("/metrics", m.Handler())
//	m.ObserveStoreOperation("sqlite", "create", metrics.ResultOK, elapsed)
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values for store operations.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

const defaultNamespace = "todo"

// Option configures a Metrics instance.
type Option func(*options)

type options struct {
	namespace       string
	buckets         []float64
	runtimeCollects bool
}

// WithNamespace overrides the metric namespace (default "todo").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithHistogramBuckets sets the latency buckets, in seconds, shared by all
// histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) { o.buckets = buckets }
}

// WithRuntimeCollectors registers the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(o *options) { o.runtimeCollects = true }
}

// Metrics owns a Prometheus registry and the instruments registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	storeOperations        *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
}

// New creates a Metrics instance backed by a fresh registry.
func New(opts ...Option) *Metrics {
	o := options{namespace: defaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	reg := prometheus.NewRegistry()
	if o.runtimeCollects {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	auto := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   o.buckets,
		}, []string{"route", "method", "status_code"}),
		storeOperations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of todo store operations by driver, operation and result.",
		}, []string{"driver", "operation", "result"}),
		storeOperationDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Todo store operation latency in seconds.",
			Buckets:   o.buckets,
		}, []string{"driver", "operation"}),
	}
}

// ObserveHTTPRequest records one completed HTTP request. The route should be
// the matched route pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(elapsed.Seconds())
}

// ObserveStoreOperation records one repository call.
func (m *Metrics) ObserveStoreOperation(driver, operation, result string, elapsed time.Duration) {
	m.storeOperations.WithLabelValues(driver, operation, result).Inc()
	m.storeOperationDuration.WithLabelValues(driver, operation).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry, mainly for tests and for
// registering additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
