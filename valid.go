package reserial

import (
	"errors"

	"github.com/unkn0wn-root/reserial/cache"
)

// Structural validity pre-checks. A reconstructed instance that is not
// well-formed gets a single composite finding instead of a cascade of
// property mismatches against broken state.

func validSync[K comparable, V any](c cache.Cache[K, V]) error {
	if c == nil {
		return errors.New("nil cache")
	}
	if c.MappingCount() < 0 {
		return errors.New("negative mapping count")
	}
	if c.Ticker() == nil {
		return errors.New("cache has no ticker")
	}
	if c.ExpireAfterWrite() < 0 || c.ExpireAfterAccess() < 0 || c.RefreshAfterWrite() < 0 {
		return errors.New("negative expiration policy")
	}
	_, hasLimit := c.MaximumWeight()
	if c.IsBounded() {
		if c.Weigher() == nil {
			return errors.New("bounded cache has no weigher")
		}
		if !hasLimit {
			return errors.New("bounded cache has no weight limit")
		}
	} else if hasLimit {
		return errors.New("unbounded cache reports a weight limit")
	}
	if lc, ok := c.(cache.LoadingCache[K, V]); ok && lc.Loader() == nil {
		return errors.New("loading cache has no loader")
	}
	return nil
}

func validAsync[K comparable, V any](c cache.AsyncLoadingCache[K, V]) error {
	if c == nil {
		return errors.New("nil async cache")
	}
	sync := c.Synchronous()
	if sync == nil {
		return errors.New("async cache has no synchronous view")
	}
	if err := validSync[K, V](sync); err != nil {
		return err
	}
	if c.Loader() == nil {
		return errors.New("async cache has no loader")
	}
	return nil
}
