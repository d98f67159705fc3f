package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"twsave/internal/structures"
)

type MetricsProviderInterface interface {
	IncSavesTotal()
	IncRestoresTotal(version string)
	IncRestoreFailures(reason string)
	ObserveSaveDuration(duration time.Duration)
	ObserveRestoreDuration(duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	savesTotal      prometheus.Counter
	restoresTotal   *prometheus.CounterVec
	restoreFailures *prometheus.CounterVec
	saveDuration    prometheus.Histogram
	restoreDuration prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func (m *MetricsProvider) IncSavesTotal() {
	m.savesTotal.Inc()
}

func (m *MetricsProvider) IncRestoresTotal(version string) {
	m.restoresTotal.WithLabelValues(version).Inc()
}

func (m *MetricsProvider) IncRestoreFailures(reason string) {
	m.restoreFailures.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) ObserveSaveDuration(duration time.Duration) {
	m.saveDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveRestoreDuration(duration time.Duration) {
	m.restoreDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		savesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "twsave_saves_total",
			Help: "Total number of snapshot builds",
		}),

		restoresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "twsave_restores_total",
			Help: "Total number of successful restores by save format version",
		}, []string{"version"}),

		restoreFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "twsave_restore_failures_total",
			Help: "Total number of failed restores by reason",
		}, []string{"reason"}),

		saveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "twsave_save_duration_seconds",
			Help:    "Snapshot build duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		restoreDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "twsave_restore_duration_seconds",
			Help:    "Restore duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "twsave_container_cache_hits_total",
			Help: "Total number of container document cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "twsave_container_cache_misses_total",
			Help: "Total number of container document cache misses",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncSavesTotal()                          {}
func (n *noopMetrics) IncRestoresTotal(_ string)               {}
func (n *noopMetrics) IncRestoreFailures(_ string)             {}
func (n *noopMetrics) ObserveSaveDuration(_ time.Duration)     {}
func (n *noopMetrics) ObserveRestoreDuration(_ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                           {}
func (n *noopMetrics) IncCacheMisses()                         {}
