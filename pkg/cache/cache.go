// Package cache provides a generic, thread-safe LRU cache with built-in
// statistics and optional Prometheus metrics integration.
//
// The engine uses it in two places: the compiled-regex cache behind
// filter expressions and the query result cache in graph/query. Both are
// bounded-size, recency-governed workloads, which is why only the LRU
// policy survives here.
package cache

import (
	"github.com/c360/semgraph/errors"
)

// Cache is a generic cache parameterized by value type V.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the zero value and false on miss.
	Get(key string) (V, bool)

	// Set stores a value. Returns true if a new entry was created, false
	// if an existing entry was updated.
	Set(key string, value V) (bool, error)

	// Delete removes an entry by key. Returns true if the key existed.
	Delete(key string) (bool, error)

	// Clear removes all entries.
	Clear() error

	// Size returns the current number of entries.
	Size() int

	// Keys returns all keys currently in the cache, most recent first.
	Keys() []string

	// Stats returns the cache statistics. Statistics are always
	// collected.
	Stats() *Statistics

	// Close releases cache resources.
	Close() error
}

// EvictCallback is called when an entry is evicted from the cache.
type EvictCallback[V any] func(key string, value V)

// validateKey rejects keys the cache cannot store.
func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", "validateKey", "key cannot be empty")
	}
	return nil
}
