// Package cache provides a fingerprint-keyed cache for staffing results
// and an Evaluator decorator that consults it.
package cache

import (
	"sync"
	"time"

	"github.com/staffcast/staffcast/internal/staffing"
)

type entry struct {
	result    staffing.Result
	expiresAt time.Time
}

// ResultCache maps query fingerprints to previously computed staffing
// results, bounded by a capacity and a TTL. Safe for concurrent use.
// Concurrent writers racing on the same fingerprint are benign: results
// are deterministic, so last-write-wins stores the same value.
type ResultCache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	capacity int
	ttl      time.Duration
}

// NewResultCache creates a ResultCache holding at most capacity entries,
// each valid for ttl.
func NewResultCache(capacity int, ttl time.Duration) *ResultCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ResultCache{
		entries:  make(map[string]entry, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get returns the cached result for fingerprint, if present and fresh.
func (c *ResultCache) Get(fingerprint string) (staffing.Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[fingerprint]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return staffing.Result{}, false
	}
	return e.result, true
}

// Put stores a result under fingerprint, evicting expired entries (and
// if necessary the entry closest to expiry) to stay within capacity.
func (c *ResultCache) Put(fingerprint string, result staffing.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fingerprint]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[fingerprint] = entry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len returns the number of entries currently held, including any that
// have expired but not yet been evicted.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops all expired entries; if the cache is still full it
// drops the entry closest to expiry. Caller must hold the write lock.
func (c *ResultCache) evictLocked() {
	now := time.Now()
	for fp, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, fp)
		}
	}
	if len(c.entries) < c.capacity {
		return
	}

	var oldest string
	var oldestExpiry time.Time
	for fp, e := range c.entries {
		if oldest == "" || e.expiresAt.Before(oldestExpiry) {
			oldest = fp
			oldestExpiry = e.expiresAt
		}
	}
	if oldest != "" {
		delete(c.entries, oldest)
	}
}
