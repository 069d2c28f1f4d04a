package cache

import (
	"sync/atomic"
)

// Statistics tracks cache performance counters. All updates are atomic;
// statistics are always collected because observability is not optional.
type Statistics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	deletes   atomic.Int64
	evictions atomic.Int64
	size      atomic.Int64
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a cache miss.
func (s *Statistics) Miss() { s.misses.Add(1) }

// RecordSet records a set operation.
func (s *Statistics) RecordSet() { s.sets.Add(1) }

// RecordDelete records a delete operation.
func (s *Statistics) RecordDelete() { s.deletes.Add(1) }

// RecordEviction records an eviction.
func (s *Statistics) RecordEviction() { s.evictions.Add(1) }

// UpdateSize records the current entry count.
func (s *Statistics) UpdateSize(size int64) { s.size.Store(size) }

// Hits returns the hit count.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the miss count.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Sets returns the set count.
func (s *Statistics) Sets() int64 { return s.sets.Load() }

// Deletes returns the delete count.
func (s *Statistics) Deletes() int64 { return s.deletes.Load() }

// Evictions returns the eviction count.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// CurrentSize returns the last recorded entry count.
func (s *Statistics) CurrentSize() int64 { return s.size.Load() }

// HitRate returns the fraction of lookups that hit, or 0 when no lookups
// have occurred.
func (s *Statistics) HitRate() float64 {
	hits := s.Hits()
	total := hits + s.Misses()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
