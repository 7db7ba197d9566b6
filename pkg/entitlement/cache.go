package entitlement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotCache stores resolved plan snapshots keyed by tenant ID.
// Implementations must be safe for concurrent use.
type SnapshotCache interface {
	// Get retrieves a snapshot, reporting false on miss or expiry.
	Get(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, bool)

	// Set stores a snapshot with the given TTL.
	Set(ctx context.Context, tenantID uuid.UUID, info *TenantPlanInfo, ttl time.Duration)

	// Delete removes a snapshot, forcing the next resolve to hit the store.
	Delete(ctx context.Context, tenantID uuid.UUID)

	// Close releases any resources held by the cache.
	Close() error
}

// memoryCache is the default in-process snapshot cache with TTL expiry
// and LRU eviction.
type memoryCache struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]cacheItem
	lru     []uuid.UUID // LRU queue for eviction
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

type cacheItem struct {
	info      *TenantPlanInfo
	expiresAt time.Time
}

// DefaultCacheSize is the default maximum number of cached snapshots.
const DefaultCacheSize = 1000

// NewMemoryCache creates an in-memory snapshot cache with automatic cleanup.
func NewMemoryCache(maxSize int) SnapshotCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	cache := &memoryCache{
		items:   make(map[uuid.UUID]cacheItem),
		lru:     make([]uuid.UUID, 0, maxSize),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go cache.cleanup()

	return cache
}

func (c *memoryCache) Get(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[tenantID]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expiresAt) {
		delete(c.items, tenantID)
		c.removeLRU(tenantID)
		return nil, false
	}

	c.updateLRU(tenantID)

	return item.info, true
}

func (c *memoryCache) Set(ctx context.Context, tenantID uuid.UUID, info *TenantPlanInfo, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict the least recently used snapshot when full
	if _, exists := c.items[tenantID]; !exists && len(c.items) >= c.maxSize {
		if len(c.lru) > 0 {
			evictKey := c.lru[0]
			delete(c.items, evictKey)
			c.lru = c.lru[1:]
		}
	}

	c.items[tenantID] = cacheItem{
		info:      info,
		expiresAt: time.Now().Add(ttl),
	}

	c.updateLRU(tenantID)
}

func (c *memoryCache) Delete(ctx context.Context, tenantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, tenantID)
	c.removeLRU(tenantID)
}

// cleanup periodically removes expired snapshots.
func (c *memoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
			c.removeLRU(key)
		}
	}
}

// updateLRU moves the key to the end of the LRU queue (most recently used).
func (c *memoryCache) updateLRU(key uuid.UUID) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append(c.lru, key)
}

func (c *memoryCache) removeLRU(key uuid.UUID) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			return
		}
	}
}

// Close stops the cleanup goroutine and waits for it to finish.
func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noOpCache disables snapshot caching. Every resolve hits the store.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() SnapshotCache {
	return &noOpCache{}
}

func (n *noOpCache) Get(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, bool) {
	return nil, false
}

func (n *noOpCache) Set(ctx context.Context, tenantID uuid.UUID, info *TenantPlanInfo, ttl time.Duration) {
}

func (n *noOpCache) Delete(ctx context.Context, tenantID uuid.UUID) {
}

func (n *noOpCache) Close() error {
	return nil
}
