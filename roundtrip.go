package reserial

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/unkn0wn-root/reserial/cache"
	"github.com/unkn0wn-root/reserial/codec"
	"github.com/unkn0wn-root/reserial/store"
)

// RoundTripper produces a structurally independent copy of a cache instance
// through a serialize/reconstruct cycle. Implementations must fail visibly
// for instances that cannot be serialized, never silently.
type RoundTripper interface {
	Reserialize(ctx context.Context, instance any) (any, error)
}

// ReserializerOptions tune the default round trip. All fields are optional.
type ReserializerOptions struct {
	// Codec encodes the snapshot. Nil means codec.JSON.
	Codec codec.Codec[cache.Snapshot]
	// Store, when set, routes the encoded snapshot through a byte store so
	// the round trip includes a persistence medium.
	Store  store.Store
	Logger Logger
}

// Reserializer is the default RoundTripper:
// Dehydrate -> Codec.Encode -> (Store.Put/Get) -> Codec.Decode -> Rehydrate.
type Reserializer[K comparable, V any] struct {
	codec codec.Codec[cache.Snapshot]
	store store.Store
	log   Logger
	seq   atomic.Uint64
}

func NewReserializer[K comparable, V any](opts ReserializerOptions) *Reserializer[K, V] {
	r := &Reserializer[K, V]{store: opts.Store}
	r.codec = coalesce[codec.Codec[cache.Snapshot]](opts.Codec, codec.JSON[cache.Snapshot]{})
	r.log = coalesce[Logger](opts.Logger, NopLogger{})
	return r
}

func (r *Reserializer[K, V]) Reserialize(ctx context.Context, instance any) (any, error) {
	snap, err := cache.Dehydrate[K, V](instance)
	if err != nil {
		return nil, err
	}
	payload, err := r.codec.Encode(*snap)
	if err != nil {
		return nil, fmt.Errorf("reserial: encode snapshot: %w", err)
	}

	if r.store != nil {
		key := fmt.Sprintf("roundtrip:%d", r.seq.Add(1))
		if err := r.store.Put(ctx, key, payload); err != nil {
			return nil, fmt.Errorf("reserial: store snapshot: %w", err)
		}
		b, ok, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("reserial: load snapshot: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("reserial: snapshot %s vanished from store", key)
		}
		payload = b
	}

	decoded, err := r.codec.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("reserial: decode snapshot: %w", err)
	}
	r.log.Debug("snapshot round trip", Fields{"bytes": len(payload)})
	return cache.Rehydrate[K, V](&decoded)
}
