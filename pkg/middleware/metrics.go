package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pathstack-dev/pathstack/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pathstack").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for cascade duration.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pathstack",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for navigation.
type metrics struct {
	navigationsTotal *prometheus.CounterVec
	cascadeDuration  *prometheus.HistogramVec
	navigationErrors *prometheus.CounterVec
	liveNotifiers    prometheus.Gauge
	routeBlocks      prometheus.Gauge
}

// globalMetrics is the singleton metrics instance, created on first call
// to Prometheus(). Re-registering the same collectors would panic.
var (
	globalMetrics     *metrics
	globalMetricsOnce sync.Once
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by kind and status",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		cascadeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cascade_duration_seconds",
			Help:        "Route rebuild and notifier cascade duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of navigation middleware errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		liveNotifiers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_notifiers",
			Help:        "Number of live notifiers below the tree root",
			ConstLabels: config.ConstLabels,
		}),

		routeBlocks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_blocks",
			Help:        "Number of blocks in the current route",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// navigations.
//
// Metrics collected:
//   - pathstack_navigations_total: counter by kind (push/replace/pop) and status
//   - pathstack_cascade_duration_seconds: histogram of cascade duration
//   - pathstack_navigation_errors_total: counter of middleware errors
//   - pathstack_live_notifiers: gauge of live notifier count
//   - pathstack_route_blocks: gauge of block count in the current route
//
// The metric set is a process-wide singleton; options are applied on the
// first call only.
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsOnce.Do(func() {
		globalMetrics = initMetrics(config)
	})
	m := globalMetrics

	return router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()
		kind := nav.Kind.String()

		m.cascadeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		if err != nil {
			m.navigationsTotal.WithLabelValues(kind, "error").Inc()
			m.navigationErrors.WithLabelValues(kind).Inc()
			return err
		}

		m.navigationsTotal.WithLabelValues(kind, "ok").Inc()
		m.liveNotifiers.Set(float64(nav.Router.NotifierCount()))
		m.routeBlocks.Set(float64(len(nav.Route.Stack)))
		return nil
	})
}
