package cache

import "sync"

// boundedLocalCache enforces a total-weight limit. Entries are admitted
// unconditionally and the cache evicts in insertion order until it is back
// under the limit. Expired entries are reaped lazily on access.
type boundedLocalCache[K comparable, V any] struct {
	config[K, V]

	mu           sync.Mutex
	entries      map[K]*entry[V]
	order        []K // insertion order, eviction candidates from the front
	weightedSize int64
}

func (c *boundedLocalCache[K, V]) MappingCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.entries))
}

func (c *boundedLocalCache[K, V]) put(key K, value V) {
	now := c.ticker.Read()
	weight := c.weigher.Weigh(key, value)

	type removal struct {
		key   K
		value V
		cause RemovalCause
	}
	var removed []removal

	c.mu.Lock()
	if prev, ok := c.entries[key]; ok {
		c.weightedSize -= prev.weight
		c.unlink(key)
		removed = append(removed, removal{key, prev.value, CauseReplaced})
	}
	c.entries[key] = &entry[V]{value: value, weight: weight, writeNanos: now, accessNanos: now}
	c.order = append(c.order, key)
	c.weightedSize += weight

	limit := *c.maxWeight
	for c.weightedSize > limit && len(c.order) > 0 {
		victim := c.order[0]
		c.order = c.order[1:]
		e, ok := c.entries[victim]
		if !ok {
			continue
		}
		delete(c.entries, victim)
		c.weightedSize -= e.weight
		removed = append(removed, removal{victim, e.value, CauseSize})
	}
	c.mu.Unlock()

	for _, r := range removed {
		c.notify(r.key, r.value, r.cause)
	}
}

func (c *boundedLocalCache[K, V]) getIfPresent(key K) (V, bool) {
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
		c.unlink(key)
		c.weightedSize -= e.weight
		c.mu.Unlock()
		c.notify(key, e.value, CauseExpired)
		var zero V
		return zero, false
	}
	e.accessNanos = now
	c.mu.Unlock()
	return e.value, true
}

func (c *boundedLocalCache[K, V]) invalidate(key K) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
		c.unlink(key)
		c.weightedSize -= e.weight
	}
	c.mu.Unlock()
	if ok {
		c.notify(key, e.value, CauseExplicit)
	}
}

func (c *boundedLocalCache[K, V]) invalidateAll() {
	c.mu.Lock()
	removed := c.entries
	c.entries = make(map[K]*entry[V])
	c.order = nil
	c.weightedSize = 0
	c.mu.Unlock()
	for k, e := range removed {
		c.notify(k, e.value, CauseExplicit)
	}
}

// unlink removes the first occurrence of key from the eviction order.
// Caller holds mu.
func (c *boundedLocalCache[K, V]) unlink(key K) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
