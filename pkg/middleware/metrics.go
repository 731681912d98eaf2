package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Vehmloewff/storable"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "storable").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for notification pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "storable",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for cell changes.
type metrics struct {
	setsTotal       *prometheus.CounterVec
	notifyDuration  *prometheus.HistogramVec
	passSubscribers *prometheus.GaugeVec
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		setsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sets_total",
			Help:        "Total number of committed changes per cell",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),

		notifyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notify_duration_seconds",
			Help:        "Notification pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"cell"}),

		passSubscribers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_subscribers",
			Help:        "Subscribers seen by the most recent notification pass",
			ConstLabels: config.ConstLabels,
		}, []string{"cell"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for cell
// changes.
//
// Metrics collected:
//   - storable_sets_total: Counter of committed changes by cell
//   - storable_notify_duration_seconds: Histogram of pass duration by cell
//   - storable_pass_subscribers: Gauge of subscribers in the latest pass
//
// Cells are labeled by name. Unnamed cells all share the "unnamed" label,
// which keeps cardinality bounded; name the cells you want to tell apart.
//
// Example:
//
//	queueDepth := storable.New(0).
//	    WithName("queue_depth").
//	    WithMiddleware(middleware.Prometheus())
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) storable.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(ev storable.Event, next func()) {
		cell := cellLabel(ev)

		// Time the notification pass
		start := time.Now()
		next()
		duration := time.Since(start).Seconds()

		m.notifyDuration.WithLabelValues(cell).Observe(duration)
		m.setsTotal.WithLabelValues(cell).Inc()
		m.passSubscribers.WithLabelValues(cell).Set(float64(ev.Subscribers))
	}
}

// cellLabel returns the metrics label for a cell, keeping cardinality
// bounded for unnamed cells.
func cellLabel(ev storable.Event) string {
	if ev.Name == "" {
		return "unnamed"
	}
	return ev.Name
}

// Collector exposes the metrics for use in custom registrations and tests.
type Collector struct {
	setsTotal       *prometheus.CounterVec
	notifyDuration  *prometheus.HistogramVec
	passSubscribers *prometheus.GaugeVec
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()

	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		setsTotal:       globalMetrics.setsTotal,
		notifyDuration:  globalMetrics.notifyDuration,
		passSubscribers: globalMetrics.passSubscribers,
	}
}
