package cache

import "context"

type entry[V any] struct {
	value       V
	weight      int64
	writeNanos  int64
	accessNanos int64
}

// localCache is the storage core behind every synchronous handle.
type localCache[K comparable, V any] interface {
	Inspector[K, V]

	put(key K, value V)
	getIfPresent(key K) (V, bool)
	invalidate(key K)
	invalidateAll()
}

// expired reports whether e is past its write or access deadline at now.
func (c *config[K, V]) expired(e *entry[V], now int64) bool {
	if c.expireAfterWrite > 0 && now-e.writeNanos >= int64(c.expireAfterWrite) {
		return true
	}
	if c.expireAfterAccess > 0 && now-e.accessNanos >= int64(c.expireAfterAccess) {
		return true
	}
	return false
}

func (c *config[K, V]) notify(key K, value V, cause RemovalCause) {
	if c.listener != nil {
		c.listener.OnRemoval(key, value, cause)
	}
}

type manualCache[K comparable, V any] struct {
	localCache[K, V]
}

func (c *manualCache[K, V]) Put(key K, value V)          { c.localCache.put(key, value) }
func (c *manualCache[K, V]) GetIfPresent(key K) (V, bool) { return c.localCache.getIfPresent(key) }
func (c *manualCache[K, V]) Invalidate(key K)            { c.localCache.invalidate(key) }
func (c *manualCache[K, V]) InvalidateAll()              { c.localCache.invalidateAll() }

type loadingCache[K comparable, V any] struct {
	manualCache[K, V]
	loader Loader[K, V]
}

func (c *loadingCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if v, ok := c.GetIfPresent(key); ok {
		return v, nil
	}
	v, err := c.loader.Load(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

func (c *loadingCache[K, V]) Loader() Loader[K, V] { return c.loader }
