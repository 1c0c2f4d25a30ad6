// Package metrics описывает метрики Prometheus движка синхронизации.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "commentfeed"

// Poll results
const (
	ResultOK        = "ok"
	ResultTransport = "transport_error"
	ResultFormat    = "format_error"
)

// Metrics collects sync engine counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	polls           *prometheus.CounterVec
	relayFallbacks  prometheus.Counter
	reconciliations prometheus.Counter
	echoes          prometheus.Counter
	stored          prometheus.Gauge
	visible         prometheus.Gauge
	pollDuration    prometheus.Histogram
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the engine metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Feed polls by result.",
		}, []string{"result"}),
		relayFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_fallbacks_total",
			Help:      "Polls served through the relay after a direct fetch failed.",
		}),
		reconciliations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Pending comments replaced by their confirmed feed rows.",
		}),
		echoes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimistic_echoes_total",
			Help:      "Locally submitted comments shown before feed confirmation.",
		}),
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "comments_stored",
			Help:      "Comments held in the store, blocked included.",
		}),
		visible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "comments_visible",
			Help:      "Comments rendered in the last render pass.",
		}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a feed poll including fetch and merge.",
			Buckets:   prometheus.DefBuckets,
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.polls, m.relayFallbacks, m.reconciliations, m.echoes,
		m.stored, m.visible, m.pollDuration,
		m.requests, m.requestDuration,
	)

	return m
}

// ObservePoll records one poll outcome.
func (m *Metrics) ObservePoll(result string, elapsed time.Duration, viaRelay bool) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(result).Inc()
	m.pollDuration.Observe(elapsed.Seconds())
	if viaRelay {
		m.relayFallbacks.Inc()
	}
}

// AddReconciliations counts replaced pending comments.
func (m *Metrics) AddReconciliations(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciliations.Add(float64(n))
}

// IncEchoes counts one optimistic echo.
func (m *Metrics) IncEchoes() {
	if m == nil {
		return
	}
	m.echoes.Inc()
}

// SetSizes updates the stored and visible comment gauges.
func (m *Metrics) SetSizes(stored, visible int) {
	if m == nil {
		return
	}
	m.stored.Set(float64(stored))
	m.visible.Set(float64(visible))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
