// Package metrics exposes Prometheus collectors for the preview server.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the preview metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "reflow").
	Namespace string

	// Subsystem is the metrics subsystem (default: "preview").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the preview metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// defaultConfig returns the default metrics configuration.
func defaultConfig() Config {
	return Config{
		Namespace: "reflow",
		Subsystem: "preview",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// collectors holds the Prometheus collectors for the preview server.
type collectors struct {
	eventsTotal      *prometheus.CounterVec
	eventDuration    *prometheus.HistogramVec
	eventErrors      *prometheus.CounterVec
	snapshotsTotal   prometheus.Counter
	hostOpsTotal     prometheus.Counter
	connectedClients prometheus.Gauge
}

var (
	global   *collectors
	globalMu sync.Mutex
)

// initCollectors registers the collectors against the configured registry.
func initCollectors(config Config) *collectors {
	factory := promauto.With(config.Registry)

	return &collectors{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of dispatched host events",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event dispatch duration in seconds, including the re-render it triggers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event dispatch failures",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "reason"}),

		snapshotsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshots_total",
			Help:        "Total number of HTML snapshots broadcast to clients",
			ConstLabels: config.ConstLabels,
		}),

		hostOpsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_ops_total",
			Help:        "Total number of host mutations applied by the reconciler",
			ConstLabels: config.ConstLabels,
		}),

		connectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connected_clients",
			Help:        "Number of connected preview WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Init registers the preview collectors. Safe to call more than once;
// only the first call's options take effect.
func Init(opts ...Option) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = initCollectors(config)
	}
}

// RecordEvent records one dispatched event and its duration.
func RecordEvent(eventType string, d time.Duration, err error) {
	if global == nil {
		return
	}
	global.eventDuration.WithLabelValues(eventType).Observe(d.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		global.eventErrors.WithLabelValues(eventType, "dispatch").Inc()
	}
	global.eventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordSnapshot records one HTML snapshot broadcast.
func RecordSnapshot() {
	if global != nil {
		global.snapshotsTotal.Inc()
	}
}

// RecordHostOps records host mutations applied since the last call.
func RecordHostOps(count int) {
	if global != nil && count > 0 {
		global.hostOpsTotal.Add(float64(count))
	}
}

// ClientConnected records a new preview client connection.
func ClientConnected() {
	if global != nil {
		global.connectedClients.Inc()
	}
}

// ClientDisconnected records a preview client disconnect.
func ClientDisconnected() {
	if global != nil {
		global.connectedClients.Dec()
	}
}
