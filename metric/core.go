package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all engine-level metrics (not caller-specific)
type Metrics struct {
	// Query metrics
	QueriesTotal      *prometheus.CounterVec
	QueryDuration     *prometheus.HistogramVec
	SolutionsProduced *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec

	// Store metrics
	StoreFacts      prometheus.Gauge
	StoreOperations *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all engine metrics
func NewMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "query",
				Name:      "total",
				Help:      "Total number of queries evaluated",
			},
			[]string{"operation", "status"},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semgraph",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Query evaluation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		SolutionsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "query",
				Name:      "solutions_total",
				Help:      "Total number of solution mappings produced",
			},
			[]string{"operation"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by component and class",
			},
			[]string{"component", "class"},
		),

		StoreFacts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "semgraph",
				Subsystem: "store",
				Name:      "facts",
				Help:      "Current number of facts in the store",
			},
		),

		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semgraph",
				Subsystem: "store",
				Name:      "operations_total",
				Help:      "Total number of store mutations by operation and status",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordQuery records the outcome of one query evaluation.
func (m *Metrics) RecordQuery(operation string, duration time.Duration, solutions int, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.QueriesTotal.WithLabelValues(operation, status).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if solutions > 0 {
		m.SolutionsProduced.WithLabelValues(operation).Add(float64(solutions))
	}
}

// RecordError counts a failure against the component that surfaced it,
// labeled with the error class.
func (m *Metrics) RecordError(component, class string) {
	m.ErrorsTotal.WithLabelValues(component, class).Inc()
}

// RecordStoreOperation records a store mutation outcome and the resulting
// fact count.
func (m *Metrics) RecordStoreOperation(operation string, success bool, factCount int) {
	status := "success"
	if !success {
		status = "error"
	}
	m.StoreOperations.WithLabelValues(operation, status).Inc()
	m.StoreFacts.Set(float64(factCount))
}
