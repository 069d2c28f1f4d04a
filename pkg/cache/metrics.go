package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/metric"
)

// cacheMetrics holds the Prometheus collectors for one cache instance.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	sets      prometheus.Counter
	evictions prometheus.Counter
	size      prometheus.Gauge

	registrar metric.Registrar
	prefix    string
}

func newCacheMetrics(registrar metric.Registrar, prefix string) (*cacheMetrics, error) {
	labels := prometheus.Labels{"cache": prefix}

	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semgraph",
			Subsystem:   "cache",
			Name:        "hits_total",
			Help:        "Total number of cache hits",
			ConstLabels: labels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semgraph",
			Subsystem:   "cache",
			Name:        "misses_total",
			Help:        "Total number of cache misses",
			ConstLabels: labels,
		}),
		sets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semgraph",
			Subsystem:   "cache",
			Name:        "sets_total",
			Help:        "Total number of cache set operations",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "semgraph",
			Subsystem:   "cache",
			Name:        "evictions_total",
			Help:        "Total number of cache evictions",
			ConstLabels: labels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "semgraph",
			Subsystem:   "cache",
			Name:        "entries",
			Help:        "Current number of cache entries",
			ConstLabels: labels,
		}),
		registrar: registrar,
		prefix:    prefix,
	}

	component := "cache." + prefix
	registrations := []struct {
		name    string
		counter prometheus.Counter
	}{
		{"hits_total", m.hits},
		{"misses_total", m.misses},
		{"sets_total", m.sets},
		{"evictions_total", m.evictions},
	}
	for _, reg := range registrations {
		if err := registrar.RegisterCounter(component, reg.name, reg.counter); err != nil {
			m.unregister()
			return nil, errors.Wrap(err, "cache", "newCacheMetrics", "counter registration")
		}
	}
	if err := registrar.RegisterGauge(component, "entries", m.size); err != nil {
		m.unregister()
		return nil, errors.Wrap(err, "cache", "newCacheMetrics", "gauge registration")
	}

	return m, nil
}

func (m *cacheMetrics) unregister() {
	component := "cache." + m.prefix
	for _, name := range []string{"hits_total", "misses_total", "sets_total", "evictions_total", "entries"} {
		m.registrar.Unregister(component, name)
	}
}
