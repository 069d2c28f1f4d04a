package cache

import (
	"github.com/c360/semgraph/metric"
)

// Option configures a cache at construction time.
type Option[V any] func(*lruCache[V])

// WithEvictionCallback sets a callback invoked after an entry is evicted
// or deleted. The callback runs outside the cache lock.
func WithEvictionCallback[V any](cb EvictCallback[V]) Option[V] {
	return func(c *lruCache[V]) {
		c.onEvict = cb
	}
}

// WithMetrics exports cache counters to the given registrar. The prefix
// identifies the cache instance in metric names and must be unique per
// registrar.
func WithMetrics[V any](registrar metric.Registrar, prefix string) Option[V] {
	return func(c *lruCache[V]) {
		c.metricsRegistrar = registrar
		c.metricsPrefix = prefix
	}
}
