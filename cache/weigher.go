package cache

// Weigher maps an entry to the capacity it consumes in a bounded cache.
type Weigher[K comparable, V any] interface {
	Weigh(key K, value V) int64
}

type singletonWeigher[K comparable, V any] struct{}

func (singletonWeigher[K, V]) Weigh(K, V) int64 { return 1 }

// SingletonWeigher weighs every entry as 1, turning a weight limit into an
// entry-count limit. The builder applies it when no weigher is configured.
func SingletonWeigher[K comparable, V any]() Weigher[K, V] {
	return singletonWeigher[K, V]{}
}

// BoundedWeigher guards a caller-supplied weigher: a negative weight is a
// programming error and panics. The builder wraps every bounded cache's
// weigher in one.
type BoundedWeigher[K comparable, V any] struct {
	Delegate Weigher[K, V]
}

func (w BoundedWeigher[K, V]) Weigh(key K, value V) int64 {
	n := w.Delegate.Weigh(key, value)
	if n < 0 {
		panic("cache: weigher returned a negative weight")
	}
	return n
}

// AsyncWeigher adapts a synchronous weigher for an async cache, whose entries
// are only weighed once their loads have completed and settled into the
// synchronous core.
type AsyncWeigher[K comparable, V any] struct {
	Delegate Weigher[K, V]
}

func (w AsyncWeigher[K, V]) Weigh(key K, value V) int64 {
	return w.Delegate.Weigh(key, value)
}

// baseWeigher peels the decorators the builder applies and returns the
// caller-supplied (or singleton) weigher underneath.
func baseWeigher[K comparable, V any](w Weigher[K, V]) Weigher[K, V] {
	for {
		switch d := w.(type) {
		case AsyncWeigher[K, V]:
			w = d.Delegate
		case BoundedWeigher[K, V]:
			w = d.Delegate
		default:
			return w
		}
	}
}
