package reserial

import (
	"context"

	"github.com/unkn0wn-root/reserial/cache"
)

// Options tune a Matcher. All fields are optional.
type Options struct {
	// RoundTripper produces the reconstructed copy. Nil means the default
	// Reserializer with a JSON codec and no byte store.
	RoundTripper RoundTripper
	Logger       Logger
}

// Matcher is the verification entry point. One Matcher may be reused across
// verifications; each call owns its own Report.
type Matcher[K comparable, V any] struct {
	rt  RoundTripper
	log Logger
}

func New[K comparable, V any](opts Options) *Matcher[K, V] {
	m := &Matcher[K, V]{rt: opts.RoundTripper, log: opts.Logger}
	if m.rt == nil {
		m.rt = NewReserializer[K, V](ReserializerOptions{})
	}
	m.log = coalesce[Logger](m.log, NopLogger{})
	return m
}

// Reserializable is the common entry point: a matcher with the default
// round trip.
func Reserializable[K comparable, V any]() *Matcher[K, V] {
	return New[K, V](Options{})
}

// Verify round-trips instance and compares the reconstructed configuration
// against the original, one finding per checked property. The error is
// non-nil only when no comparison could run at all: the instance (or its
// copy) is outside the supported variant set, or the round trip itself
// failed. Property mismatches are findings in the Report, never errors.
func (m *Matcher[K, V]) Verify(ctx context.Context, instance any) (*Report, error) {
	variant, err := Classify[K, V](instance)
	if err != nil {
		return nil, err
	}

	copy, err := m.rt.Reserialize(ctx, instance)
	if err != nil {
		return nil, err
	}
	copyVariant, err := Classify[K, V](copy)
	if err != nil {
		return nil, err
	}

	m.log.Debug("verifying cache round trip", Fields{"variant": variant.String()})
	rep := newReport()
	if copyVariant != variant {
		rep.fail("same variant", variant.String(), copyVariant.String(), "")
		return rep, nil
	}

	switch variant.Mode {
	case AsyncLoading:
		orig, _ := asyncOuter[K, V](instance)
		cpy, _ := asyncOuter[K, V](copy)
		checkAsyncCache[K, V](orig, cpy, variant.Bounded, rep)
	default:
		orig, _ := instance.(cache.Cache[K, V])
		cpy, _ := copy.(cache.Cache[K, V])
		checkSyncCache[K, V](orig, cpy, variant, rep)
	}

	m.log.Debug("verification complete", Fields{
		"variant": variant.String(),
		"checks":  len(rep.findings),
		"matches": rep.Matches(),
	})
	return rep, nil
}

// Matches runs Verify and reduces it to the verdict. Classification and
// round-trip failures count as non-matches.
func (m *Matcher[K, V]) Matches(instance any) bool {
	rep, err := m.Verify(context.Background(), instance)
	return err == nil && rep.Matches()
}

// asyncOuter resolves instance to its async cache, stepping through the
// synchronous view facade when needed.
func asyncOuter[K comparable, V any](instance any) (cache.AsyncLoadingCache[K, V], bool) {
	if v, ok := instance.(interface{ Outer() cache.AsyncLoadingCache[K, V] }); ok {
		return v.Outer(), true
	}
	c, ok := instance.(cache.AsyncLoadingCache[K, V])
	return c, ok
}
