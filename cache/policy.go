package cache

import (
	"context"
	"time"
)

// Strength is the reference-retention policy for keys or values. The Go
// runtime has no weak references, so strengths are recorded policy consumed
// by the engine's maintenance layer rather than GC hints.
type Strength uint8

const (
	Strong Strength = iota
	Weak
	Soft
)

func (s Strength) String() string {
	switch s {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	case Soft:
		return "soft"
	default:
		return "unknown"
	}
}

// Ticker is the cache's time source, in nanoseconds.
type Ticker interface {
	Read() int64
}

type systemTicker struct{}

func (systemTicker) Read() int64 { return time.Now().UnixNano() }

// SystemTicker is the shared wall-clock ticker every cache uses unless the
// builder overrides it. It round-trips to the same instance.
var SystemTicker Ticker = systemTicker{}

// RemovalCause tells a RemovalListener why an entry went away.
type RemovalCause uint8

const (
	CauseExplicit RemovalCause = iota
	CauseReplaced
	CauseExpired
	CauseSize
)

func (c RemovalCause) String() string {
	switch c {
	case CauseExplicit:
		return "explicit"
	case CauseReplaced:
		return "replaced"
	case CauseExpired:
		return "expired"
	case CauseSize:
		return "size"
	default:
		return "unknown"
	}
}

// RemovalListener is notified after an entry has been removed.
// Implementations must be cheap; the cache calls them inline.
type RemovalListener[K comparable, V any] interface {
	OnRemoval(key K, value V, cause RemovalCause)
}

// Loader computes values for a loading cache.
type Loader[K comparable, V any] interface {
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) { return f(ctx, key) }
