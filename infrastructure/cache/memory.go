package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often expired items are swept
const DefaultCleanupInterval = time.Minute

// MemoryCache is a process-local cache with per-item expiry and a size cap
type MemoryCache struct {
	mu       sync.RWMutex
	items    map[string]cacheItem
	ttl      time.Duration
	maxItems int

	stop     chan struct{}
	stopOnce sync.Once
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// NewMemoryCache creates a memory cache. ttl is used when Set is called with
// a zero ttl; a zero default means items never expire. maxItems <= 0 disables
// the size cap.
func NewMemoryCache(ttl time.Duration, maxItems int) *MemoryCache {
	cache := &MemoryCache{
		items:    make(map[string]cacheItem),
		ttl:      ttl,
		maxItems: maxItems,
		stop:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanupExpired(DefaultCleanupInterval)

	return cache
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false, nil
	}

	return item.value, true, nil
}

// Set stores a value in cache
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.maxItems > 0 && len(c.items) >= c.maxItems {
		c.evictLocked()
	}
	c.items[key] = item

	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Clear removes all values from cache
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
	return nil
}

// Len returns the number of stored items, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

// evictLocked drops expired items, or the item closest to expiry when none
// has expired yet
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	if c.removeExpiredLocked(now) > 0 {
		return
	}

	var (
		victim string
		oldest time.Time
		found  bool
	)
	for key, item := range c.items {
		if !found || (!item.expiresAt.IsZero() && (oldest.IsZero() || item.expiresAt.Before(oldest))) {
			victim, oldest, found = key, item.expiresAt, true
		}
	}
	if found {
		delete(c.items, victim)
	}
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, item := range c.items {
		if item.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// cleanupExpired periodically removes expired items
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.removeExpiredLocked(time.Now())
			c.mu.Unlock()
		}
	}
}
