package reserial

import "github.com/unkn0wn-root/reserial/cache"

// maxWeigherDepth bounds decorator unwrapping. The builder applies at most
// two layers; anything deeper than this is a malformed chain.
const maxWeigherDepth = 16

// UnwrapWeigher peels the known weigher decorators (the async adapter and
// the validating wrapper) and returns the base weigher underneath. A weigher
// that is not decorated is returned unchanged. Chains that do not bottom out
// within maxWeigherDepth fail with ErrUnwrapDepth instead of looping.
func UnwrapWeigher[K comparable, V any](w any) (any, error) {
	for i := 0; i < maxWeigherDepth; i++ {
		switch d := w.(type) {
		case cache.AsyncWeigher[K, V]:
			w = d.Delegate
		case cache.BoundedWeigher[K, V]:
			w = d.Delegate
		default:
			return w, nil
		}
	}
	return nil, ErrUnwrapDepth
}
