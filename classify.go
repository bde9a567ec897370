package reserial

import "github.com/unkn0wn-root/reserial/cache"

// Mode is the population discipline of a cache variant.
type Mode uint8

const (
	Manual Mode = iota
	Loading
	AsyncLoading
)

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Loading:
		return "loading"
	case AsyncLoading:
		return "async-loading"
	default:
		return "unknown"
	}
}

// Variant tags an instance within the closed set
// {unbounded, bounded} x {manual, loading, async-loading}.
type Variant struct {
	Mode    Mode
	Bounded bool
}

func (v Variant) String() string {
	if v.Bounded {
		return "bounded " + v.Mode.String()
	}
	return "unbounded " + v.Mode.String()
}

// Classify resolves the variant tag of instance, or fails with
// UnsupportedVariantError. It is a pure predicate.
//
// The synchronous view of an async cache is not a distinct variant: it is
// recognized by its Outer accessor and classified as its outer async
// instance. An async cache itself takes its bounded/unbounded class from the
// synchronous core it wraps.
func Classify[K comparable, V any](instance any) (Variant, error) {
	switch c := instance.(type) {
	case interface{ Outer() cache.AsyncLoadingCache[K, V] }:
		return Classify[K, V](c.Outer())
	case cache.AsyncLoadingCache[K, V]:
		sync := c.Synchronous()
		if sync == nil {
			return Variant{}, &UnsupportedVariantError{Instance: instance}
		}
		return Variant{Mode: AsyncLoading, Bounded: sync.IsBounded()}, nil
	case cache.LoadingCache[K, V]:
		return Variant{Mode: Loading, Bounded: c.IsBounded()}, nil
	case cache.Cache[K, V]:
		return Variant{Mode: Manual, Bounded: c.IsBounded()}, nil
	default:
		return Variant{}, &UnsupportedVariantError{Instance: instance}
	}
}
