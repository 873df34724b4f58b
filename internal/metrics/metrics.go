// Package metrics provides Prometheus metrics for the bookmarks service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results recorded by ObserveOperation.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
)

// Manager owns the service metrics and the registry they live on.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry
	storeSize        func() int

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	operations          *prometheus.CounterVec
	rateLimited         *prometheus.CounterVec
}

// NewManager creates a metrics manager. Without WithRegistry a fresh registry is used.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bookmarks",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method"},
	)

	m.operations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "bookmark_operations_total",
			Help:      "Total number of record store operations by outcome",
		},
		[]string{"operation", "result"},
	)

	m.rateLimited = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "rate_limited_total",
			Help:      "Write requests rejected by the rate limiter",
		},
		[]string{"method"},
	)

	if m.storeSize != nil {
		size := m.storeSize
		auto.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      "store_size",
			Help:      "Current number of bookmarks held by the store",
		}, func() float64 { return float64(size()) })
	}
}

// ObserveHTTP records one served request. route is the chi route pattern, not the raw path.
func (m *Manager) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveOperation records the outcome of a store operation (list, find, get, create, delete, update_description).
// Safe to call on a nil Manager.
func (m *Manager) ObserveOperation(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// ObserveThrottled counts a request rejected by the rate limiter.
func (m *Manager) ObserveThrottled(method string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(method).Inc()
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
