package cache

import "sync"

// unboundedLocalCache grows without limit; only invalidation and expiration
// shrink it. Expired entries are reaped lazily on access.
type unboundedLocalCache[K comparable, V any] struct {
	config[K, V]

	mu      sync.RWMutex
	entries map[K]*entry[V]
}

func (c *unboundedLocalCache[K, V]) MappingCount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.entries))
}

func (c *unboundedLocalCache[K, V]) put(key K, value V) {
	now := c.ticker.Read()
	c.mu.Lock()
	prev, replaced := c.entries[key]
	c.entries[key] = &entry[V]{value: value, writeNanos: now, accessNanos: now}
	c.mu.Unlock()
	if replaced {
		c.notify(key, prev.value, CauseReplaced)
	}
}

func (c *unboundedLocalCache[K, V]) getIfPresent(key K) (V, bool) {
	now := c.ticker.Read()
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		var zero V
		return zero, false
	}
	if c.expired(e, now) {
		delete(c.entries, key)
		c.mu.Unlock()
		c.notify(key, e.value, CauseExpired)
		var zero V
		return zero, false
	}
	e.accessNanos = now
	c.mu.Unlock()
	return e.value, true
}

func (c *unboundedLocalCache[K, V]) invalidate(key K) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	if ok {
		c.notify(key, e.value, CauseExplicit)
	}
}

func (c *unboundedLocalCache[K, V]) invalidateAll() {
	c.mu.Lock()
	removed := c.entries
	c.entries = make(map[K]*entry[V])
	c.mu.Unlock()
	for k, e := range removed {
		c.notify(k, e.value, CauseExplicit)
	}
}
