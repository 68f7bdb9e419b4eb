// Package cache provides an in-memory caching layer for the HTTP server.
// It uses patrickmn/go-cache for TTL-based caching of computed responses
// such as seat layouts. The server flushes it whenever the chamber reloads.
package cache

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/hemicycle/pkg/layout"
)

// Cache wraps go-cache with hit accounting and typed helpers.
type Cache struct {
	store    *gocache.Cache
	relayout layout.Relayout
	hits     atomic.Int64
	misses   atomic.Int64
}

// New creates a new cache with the given TTL and cleanup interval.
// defaultTTL is the default expiration time for cache entries.
// cleanupInterval is how often expired items are removed from memory.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.store.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value in the cache with custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

const seatsPrefix = "seats:"

// SeatsKey is the cache key of a layout for n seats at width.
func SeatsKey(n int, width float64) string {
	return seatsPrefix + strconv.Itoa(n) + ":" + strconv.FormatFloat(width, 'f', -1, 64)
}

// Seats returns a cached layout.
func (c *Cache) Seats(n int, width float64) ([]layout.Seat, bool) {
	v, ok := c.Get(SeatsKey(n, width))
	if !ok {
		return nil, false
	}
	seats, ok := v.([]layout.Seat)
	return seats, ok
}

// SetSeats caches a layout.
func (c *Cache) SetSeats(n int, width float64, seats []layout.Seat) {
	c.Set(SeatsKey(n, width), seats)
}

// ObserveWidth records the width of a seat request and reports whether its
// width class differs from the previous request. On a class change the
// layouts cached for other widths are dropped; within a class they stay.
func (c *Cache) ObserveWidth(width float64) (layout.WidthClass, bool, error) {
	_, _, seen := c.relayout.Current()
	class, changed, err := c.relayout.Observe(width)
	if err != nil {
		return "", false, err
	}
	if changed && seen {
		c.flushSeats()
	}
	return class, changed, nil
}

func (c *Cache) flushSeats() {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, seatsPrefix) {
			c.store.Delete(key)
		}
	}
}

// Stats returns cache statistics.
type Stats struct {
	ItemCount int   `json:"item_count"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
}
