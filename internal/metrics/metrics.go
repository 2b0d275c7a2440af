// Package metrics collects per-run counters for the extractor on a private
// Prometheus registry and can dump them in the node_exporter textfile format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "event_extractor"

// Metrics holds the collectors for one run. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
	fetched     prometheus.Counter
	duplicates  prometheus.Counter
	dropped     prometheus.Counter
	exported    *prometheus.CounterVec
	runSeconds  prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New creates a Metrics with its own registry; nothing is registered globally.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Eventbrite API responses by endpoint and HTTP status code",
	}, []string{"endpoint", "code"})
	m.rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_rate_limit_waits_total",
		Help:      "Backoff waits taken after a 429 response",
	}, []string{"endpoint"})
	m.fetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_fetched_total",
		Help:      "Unique events returned by searches",
	})
	m.duplicates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_duplicate_total",
		Help:      "Search results dropped because their ID was already seen",
	})
	m.dropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_filtered_total",
		Help:      "Events removed by the transform filter stage",
	})
	m.exported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_exported_total",
		Help:      "Records written per output format",
	}, []string{"format"})
	m.runSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})
	m.lastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run",
	})

	m.registry.MustRegister(
		m.requests,
		m.rateLimited,
		m.fetched,
		m.duplicates,
		m.dropped,
		m.exported,
		m.runSeconds,
		m.lastSuccess,
	)
	return m
}

// Registry exposes the underlying registry, e.g. for promhttp or tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest counts one API response
func (m *Metrics) ObserveRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// RateLimited counts one backoff wait
func (m *Metrics) RateLimited(endpoint string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

// EventsFetched adds n unique events
func (m *Metrics) EventsFetched(n int) {
	if m == nil {
		return
	}
	m.fetched.Add(float64(n))
}

// DuplicateDropped counts one dropped duplicate
func (m *Metrics) DuplicateDropped() {
	if m == nil {
		return
	}
	m.duplicates.Inc()
}

// Filtered adds n events removed by filtering
func (m *Metrics) Filtered(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.dropped.Add(float64(n))
}

// Exported adds n records written in format
func (m *Metrics) Exported(format string, n int) {
	if m == nil {
		return
	}
	m.exported.WithLabelValues(format).Add(float64(n))
}

// RunFinished records the duration of a successful run
func (m *Metrics) RunFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.runSeconds.Set(d.Seconds())
	m.lastSuccess.SetToCurrentTime()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
