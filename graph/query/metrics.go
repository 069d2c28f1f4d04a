package query

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semgraph/metric"
)

// Metrics holds Prometheus metrics for the query manager.
type Metrics struct {
	queryTotal    *prometheus.CounterVec
	queryDuration prometheus.Histogram
	resultSize    prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

// NewMetrics creates and registers the query manager metrics. A nil
// registry yields nil, which disables recording.
func NewMetrics(registry *metric.MetricsRegistry, component string) *Metrics {
	if registry == nil {
		return nil
	}

	m := &Metrics{
		queryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semgraph",
			Subsystem: "query_manager",
			Name:      "executions_total",
			Help:      "Total number of query executions by operation kind and status",
		}, []string{"kind", "status"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "semgraph",
			Subsystem: "query_manager",
			Name:      "duration_seconds",
			Help:      "Query execution duration",
			Buckets:   prometheus.DefBuckets,
		}),
		resultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "semgraph",
			Subsystem: "query_manager",
			Name:      "result_size",
			Help:      "Number of solutions per query result",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "semgraph",
			Subsystem: "query_manager",
			Name:      "result_cache_hits_total",
			Help:      "Total number of result cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "semgraph",
			Subsystem: "query_manager",
			Name:      "result_cache_misses_total",
			Help:      "Total number of result cache misses",
		}),
	}

	// Registration conflicts only arise when two managers share a
	// registry under the same component name; metrics are disabled in
	// that case rather than failing construction.
	if err := registry.RegisterCounterVec(component, "executions_total", m.queryTotal); err != nil {
		return nil
	}
	_ = registry.RegisterHistogram(component, "duration_seconds", m.queryDuration)
	_ = registry.RegisterHistogram(component, "result_size", m.resultSize)
	_ = registry.RegisterCounter(component, "result_cache_hits_total", m.cacheHits)
	_ = registry.RegisterCounter(component, "result_cache_misses_total", m.cacheMisses)

	return m
}

// RecordQuery records one execution.
func (m *Metrics) RecordQuery(kind string, duration time.Duration, solutions int, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.queryTotal.WithLabelValues(kind, status).Inc()
	m.queryDuration.Observe(duration.Seconds())
	if success {
		m.resultSize.Observe(float64(solutions))
	}
}

// RecordCacheHit records a result cache hit.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// RecordCacheMiss records a result cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
