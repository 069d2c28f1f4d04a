package cache

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/c360/semgraph/errors"
	"github.com/c360/semgraph/metric"
)

// lruCache is a thread-safe cache with least-recently-used eviction.
type lruCache[V any] struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*list.Element
	order   *list.List
	stats   *Statistics
	closed  bool

	onEvict EvictCallback[V]

	metricsRegistrar metric.Registrar
	metricsPrefix    string
	metrics          *cacheMetrics
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRU creates a cache holding at most maxSize entries. When full, the
// least recently used entry is evicted to make room.
func NewLRU[V any](maxSize int, opts ...Option[V]) (Cache[V], error) {
	if maxSize <= 0 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("max size must be positive, got %d", maxSize),
			"cache", "NewLRU", "size validation")
	}

	c := &lruCache[V]{
		maxSize: maxSize,
		entries: make(map[string]*list.Element),
		order:   list.New(),
		stats:   &Statistics{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metricsRegistrar != nil && c.metricsPrefix != "" {
		metrics, err := newCacheMetrics(c.metricsRegistrar, c.metricsPrefix)
		if err != nil {
			return nil, err
		}
		c.metrics = metrics
	}

	return c, nil
}

// Get retrieves a value and marks it most recently used.
func (c *lruCache[V]) Get(key string) (V, bool) {
	var zero V
	if validateKey(key) != nil {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.misses.Inc()
		}
		return zero, false
	}

	c.order.MoveToFront(elem)
	c.stats.Hit()
	if c.metrics != nil {
		c.metrics.hits.Inc()
	}
	return elem.Value.(*lruEntry[V]).value, true
}

// Set stores a value, evicting the least recently used entry if the
// cache is full.
func (c *lruCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var evictedKey string
	var evictedValue V
	evicted := false

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false, errors.WrapInvalid(errors.ErrInvalidData, "cache", "Set", "cache is closed")
	}

	created := false
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(elem)
	} else {
		if c.order.Len() >= c.maxSize {
			oldest := c.order.Back()
			if oldest != nil {
				entry := oldest.Value.(*lruEntry[V])
				evictedKey = entry.key
				evictedValue = entry.value
				evicted = true
				c.order.Remove(oldest)
				delete(c.entries, entry.key)
				c.stats.RecordEviction()
				if c.metrics != nil {
					c.metrics.evictions.Inc()
				}
			}
		}
		c.entries[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
		created = true
	}

	c.stats.RecordSet()
	c.stats.UpdateSize(int64(c.order.Len()))
	if c.metrics != nil {
		c.metrics.sets.Inc()
		c.metrics.size.Set(float64(c.order.Len()))
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	// Callback runs outside the lock so it may safely re-enter the cache.
	if evicted && onEvict != nil {
		onEvict(evictedKey, evictedValue)
	}

	return created, nil
}

// Delete removes an entry.
func (c *lruCache[V]) Delete(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var removedValue V
	removed := false

	c.mu.Lock()
	elem, ok := c.entries[key]
	if ok {
		entry := elem.Value.(*lruEntry[V])
		removedValue = entry.value
		removed = true
		c.order.Remove(elem)
		delete(c.entries, key)
		c.stats.RecordDelete()
		c.stats.UpdateSize(int64(c.order.Len()))
		if c.metrics != nil {
			c.metrics.size.Set(float64(c.order.Len()))
		}
	}
	onEvict := c.onEvict
	c.mu.Unlock()

	if removed && onEvict != nil {
		onEvict(key, removedValue)
	}

	return removed, nil
}

// Clear removes all entries without invoking eviction callbacks.
func (c *lruCache[V]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.size.Set(0)
	}
	return nil
}

// Size returns the current number of entries.
func (c *lruCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns all keys, most recently used first.
func (c *lruCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry[V]).key)
	}
	return keys
}

// Stats returns the cache statistics.
func (c *lruCache[V]) Stats() *Statistics {
	return c.stats
}

// Close releases the cache and unregisters its metrics.
func (c *lruCache[V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	if c.metrics != nil {
		c.metrics.unregister()
		c.metrics = nil
	}
	return nil
}
