package observe

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/elmen"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "elmen").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "elmen",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is an elmen.Observer that records Prometheus metrics. It is safe
// for concurrent use.
type Metrics struct {
	buildersTotal *prometheus.CounterVec
	opsTotal      *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	openBuilders  prometheus.Gauge
	buildDuration *prometheus.HistogramVec

	now func() time.Time
}

var _ elmen.Observer = (*Metrics)(nil)

// NewMetrics registers the builder metrics and returns the observer.
// Registering twice on the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		buildersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builders_total",
			Help:        "Total number of builders finalized by Done",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "status"}),

		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ops_total",
			Help:        "Total number of chained builder calls",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "status"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of recorded builder errors",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "kind"}),

		openBuilders: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "open_builders",
			Help:        "Number of builders created but not finalized",
			ConstLabels: config.ConstLabels,
		}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Time from builder creation to Done in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"status"}),

		now: time.Now,
	}
}

// Begin implements elmen.Observer.
func (m *Metrics) Begin(_ context.Context, tag string) elmen.Span {
	m.openBuilders.Inc()
	return &metricsSpan{m: m, tag: tag, start: m.now()}
}

type metricsSpan struct {
	m     *Metrics
	tag   string
	start time.Time
	once  sync.Once
}

func (s *metricsSpan) Op(name string, err error) {
	s.m.opsTotal.WithLabelValues(name, status(err)).Inc()
	if err != nil {
		s.m.errorsTotal.WithLabelValues(name, kindLabel(err)).Inc()
	}
}

func (s *metricsSpan) End(err error) {
	s.once.Do(func() {
		st := status(err)
		s.m.openBuilders.Dec()
		s.m.buildersTotal.WithLabelValues(s.tag, st).Inc()
		s.m.buildDuration.WithLabelValues(st).Observe(s.m.now().Sub(s.start).Seconds())
	})
}
