// Package cache provides the bounded recency cache for rendered articles.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/first-storm/henkaiki/internal/errors"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 100

// Cache is a bounded LRU cache keyed by article id. Get promotes the
// entry to most-recently-used; Put beyond capacity evicts the
// least-recently-used entry. Capacity is fixed at construction.
//
// All methods are safe for concurrent use. Hit/miss counters are only
// advanced when stat recording was enabled at construction.
type Cache[V any] struct {
	lru         *lru.Cache[int32, V]
	capacity    int
	recordStats bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache with the given capacity.
// A non-positive capacity falls back to DefaultCapacity.
func New[V any](capacity int, recordStats bool) (*Cache[V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	inner, err := lru.New[int32, V](capacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err)
	}
	return &Cache[V]{
		lru:         inner,
		capacity:    capacity,
		recordStats: recordStats,
	}, nil
}

// Get returns the cached value for id, promoting it to most-recently-used.
func (c *Cache[V]) Get(id int32) (V, bool) {
	v, ok := c.lru.Get(id)
	if c.recordStats {
		if ok {
			c.hits.Add(1)
		} else {
			c.misses.Add(1)
		}
	}
	return v, ok
}

// Peek returns the cached value for id without promoting it and without
// touching the hit/miss counters.
func (c *Cache[V]) Peek(id int32) (V, bool) {
	return c.lru.Peek(id)
}

// Put stores the value for id, evicting the least-recently-used entry
// when the cache is full.
func (c *Cache[V]) Put(id int32, v V) {
	c.lru.Add(id, v)
}

// Remove drops the entry for id if present.
func (c *Cache[V]) Remove(id int32) {
	c.lru.Remove(id)
}

// Clear empties the cache unconditionally.
func (c *Cache[V]) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Capacity returns the fixed capacity chosen at construction.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// Stats is a point-in-time snapshot of the hit/miss counters.
type Stats struct {
	Hits    uint64  `json:"cache_hit"`
	Misses  uint64  `json:"cache_miss"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns the current hit/miss counters. All zeros when stat
// recording is disabled.
func (c *Cache[V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if hits+misses > 0 {
		rate = float64(hits) / float64(hits+misses)
	}
	return Stats{Hits: hits, Misses: misses, HitRate: rate}
}

// ResetStats zeroes the hit/miss counters.
func (c *Cache[V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
