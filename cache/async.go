package cache

import (
	"context"
	"sync"
)

// Future is the result of an asynchronous load.
type Future[V any] struct {
	done  chan struct{}
	value V
	err   error
}

func newFuture[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

func completedFuture[V any](value V) *Future[V] {
	f := newFuture[V]()
	f.value = value
	close(f.done)
	return f
}

// Wait blocks until the load settles or ctx is done.
func (f *Future[V]) Wait(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Done reports whether the load has settled.
func (f *Future[V]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[V]) complete(value V, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// asyncLoadingCache wraps a synchronous loading core. Loads run in their own
// goroutine; completed values settle into the core, so introspection of the
// async handle reads through to the core's configuration.
type asyncLoadingCache[K comparable, V any] struct {
	Inspector[K, V]

	cache  *loadingCache[K, V]
	loader Loader[K, V]

	mu       sync.Mutex
	inflight map[K]*Future[V]
}

func (c *asyncLoadingCache[K, V]) Get(ctx context.Context, key K) *Future[V] {
	if v, ok := c.cache.GetIfPresent(key); ok {
		return completedFuture(v)
	}

	c.mu.Lock()
	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return f
	}
	f := newFuture[V]()
	c.inflight[key] = f
	c.mu.Unlock()

	go func() {
		v, err := c.loader.Load(ctx, key)
		if err == nil {
			c.cache.Put(key, v)
		}
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		f.complete(v, err)
	}()
	return f
}

func (c *asyncLoadingCache[K, V]) Synchronous() LoadingCache[K, V] {
	return &loadingView[K, V]{Inspector: c.cache, outer: c}
}

func (c *asyncLoadingCache[K, V]) Loader() Loader[K, V] { return c.loader }

// loadingView adapts an async cache to the LoadingCache surface. It is a
// facade over the outer async instance, not a distinct cache: reads block on
// in-flight loads and writes land in the shared core.
type loadingView[K comparable, V any] struct {
	Inspector[K, V]

	outer *asyncLoadingCache[K, V]
}

// Outer returns the async cache this view fronts.
func (v *loadingView[K, V]) Outer() AsyncLoadingCache[K, V] { return v.outer }

func (v *loadingView[K, V]) Get(ctx context.Context, key K) (V, error) {
	return v.outer.Get(ctx, key).Wait(ctx)
}

func (v *loadingView[K, V]) GetIfPresent(key K) (V, bool) {
	return v.outer.cache.GetIfPresent(key)
}

func (v *loadingView[K, V]) Put(key K, value V) { v.outer.cache.Put(key, value) }
func (v *loadingView[K, V]) Invalidate(key K)   { v.outer.cache.Invalidate(key) }
func (v *loadingView[K, V]) InvalidateAll()     { v.outer.cache.InvalidateAll() }

func (v *loadingView[K, V]) Loader() Loader[K, V] { return v.outer.loader }
