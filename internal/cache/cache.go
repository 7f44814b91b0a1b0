// Package cache provides an LRU cache with hit and eviction counters. The
// CLI uses it to convert identical bundle entries once.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries. Values below 1 use the default.
	MaxSize int
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{MaxSize: 256}
}

// Cache is a thread-safe LRU cache.
type Cache[K comparable, V any] struct {
	lru     *lru.Cache[K, V]
	maxSize int

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates a cache with the given configuration.
func New[K comparable, V any](config Config) (*Cache[K, V], error) {
	if config.MaxSize < 1 {
		config.MaxSize = DefaultConfig().MaxSize
	}
	c := &Cache[K, V]{maxSize: config.MaxSize}
	l, err := lru.NewWithEvict[K, V](config.MaxSize, func(K, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

// Get retrieves a value and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put stores a value, evicting the least recently used entry when full.
func (c *Cache[K, V]) Put(key K, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
		MaxSize:   c.maxSize,
	}
}
