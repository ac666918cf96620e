package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LRUConfig configures the LRU cache.
type LRUConfig struct {
	// Capacity is the maximum number of entries.
	// Default: 1000
	Capacity int

	// Policy controls TTL defaulting and clamping.
	// Default: DefaultPolicy()
	Policy Policy

	// OnEvict is called when an entry is removed for capacity.
	OnEvict func(key string)
}

// LRUCache is a bounded in-memory cache with per-entry TTL and
// least-recently-used eviction.
//
// All operations serialize through one exclusive lock per instance. Each
// operation is O(1) amortized and performs no blocking work under the lock,
// so the coarse lock is the bottleneck only in pathological fan-in.
type LRUCache struct {
	config LRUConfig

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	hits   uint64
	misses uint64

	group singleflight.Group
}

type lruEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	createdAt time.Time
	hits      uint64
}

// NewLRUCache creates a new LRU cache.
func NewLRUCache(config LRUConfig) *LRUCache {
	// Apply defaults
	if config.Capacity <= 0 {
		config.Capacity = 1000
	}
	if config.Policy == (Policy{}) {
		config.Policy = DefaultPolicy()
	}

	return &LRUCache{
		config:  config,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get retrieves a value from the cache. Returns (nil, false) on miss or
// expiry. A hit promotes the entry to most-recently-used; an expired entry
// is removed and counted as a miss.
func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.lookup(key, true)
}

// lookup is Get with control over miss accounting. The in-flight re-check
// in GetOrCompute is part of the same logical miss and must not count a
// second one.
func (c *LRUCache) lookup(key string, recordMiss bool) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		if recordMiss {
			c.misses++
		}
		return nil, false
	}

	entry := elem.Value.(*lruEntry)
	if !time.Now().Before(entry.expiresAt) {
		c.removeLocked(elem)
		if recordMiss {
			c.misses++
		}
		return nil, false
	}

	entry.hits++
	c.hits++
	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a value with the given TTL. TTL<=0 uses the policy default;
// a zero effective TTL disables caching for the entry. If the cache is at
// capacity and the key is new, the least-recently-used entry is evicted
// first, regardless of its remaining TTL.
func (c *LRUCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	ttl = c.config.Policy.EffectiveTTL(ttl)
	if ttl <= 0 {
		return nil
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = now.Add(ttl)
		entry.createdAt = now
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.config.Capacity {
		c.evictOldestLocked()
	}

	elem := c.order.PushFront(&lruEntry{
		key:       key,
		value:     value,
		expiresAt: now.Add(ttl),
		createdAt: now,
	})
	c.entries[key] = elem
	return nil
}

// GetOrCompute returns the cached value for key if present and unexpired;
// otherwise it invokes fn, stores the result, and returns it.
//
// Concurrent misses for the same key are coalesced: fn runs once and all
// callers share the result. Callers must treat the returned slice as
// immutable. Errors from fn are returned and never cached.
func (c *LRUCache) GetOrCompute(ctx context.Context, key string, fn ComputeFunc, ttl time.Duration) ([]byte, error) {
	if fn == nil {
		return nil, ErrNilCompute
	}

	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// A coalesced caller may arrive after the winner already stored.
		if value, ok := c.lookup(key, false); ok {
			return value, nil
		}

		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, value, ttl); err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Delete removes a value from the cache. Idempotent - no error on miss.
func (c *LRUCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
	return nil
}

// Clear removes all entries and resets hit/miss counters.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}

// CleanupExpired scans all entries and removes those whose expiry has
// passed. Returns the number removed.
func (c *LRUCache) CleanupExpired() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if !now.Before(elem.Value.(*lruEntry).expiresAt) {
			c.removeLocked(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// Len returns the current number of entries, expired or not.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of cache statistics.
func (c *LRUCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:     c.order.Len(),
		Capacity: c.config.Capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
	s.Utilization = float64(s.Size) / float64(s.Capacity)
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

func (c *LRUCache) evictOldestLocked() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	key := elem.Value.(*lruEntry).key
	c.removeLocked(elem)
	if c.config.OnEvict != nil {
		c.config.OnEvict(key)
	}
}

func (c *LRUCache) removeLocked(elem *list.Element) {
	delete(c.entries, elem.Value.(*lruEntry).key)
	c.order.Remove(elem)
}

// Stats contains cache statistics.
type Stats struct {
	Size        int
	Capacity    int
	Utilization float64
	Hits        uint64
	Misses      uint64
	HitRate     float64
}

// Ensure LRUCache implements Cache
var _ Cache = (*LRUCache)(nil)
