// Package cache implements a small Caffeine-style in-memory cache with a
// closed set of structural variants: {unbounded, bounded} x {manual, loading}
// plus async-loading handles that wrap a synchronous core.
//
// Components:
//   - Builder[K, V]: fluent configuration; Build / BuildLoading / BuildAsync
//     decide the variant.
//   - Inspector[K, V]: read-only configuration surface every variant exposes,
//     consumed by verification tooling.
//   - Snapshot + Register: the serializable form of a cache. Policy settings
//     travel by value; collaborators (tickers, listeners, weighers, loaders)
//     travel by registered component name and are rebuilt from factories, so
//     a rehydrated cache keeps implementation types but never entry state.
package cache

import (
	"context"
	"time"
)

// Inspector is the read-only configuration surface of a cache. Accessors for
// bounded-only policies (Weigher, MaximumWeight) report zero values on
// unbounded instances.
type Inspector[K comparable, V any] interface {
	// MappingCount reports the number of live entries.
	MappingCount() int64
	IsBounded() bool
	Ticker() Ticker
	IsRecordingStats() bool
	// RemovalListener returns the configured listener, or nil.
	RemovalListener() RemovalListener[K, V]
	KeyStrength() Strength
	ValueStrength() Strength
	// Weigher returns the configured weigher as applied by the builder,
	// decorators included. Nil for unbounded caches.
	Weigher() Weigher[K, V]
	// MaximumWeight reports the weight limit; ok is false for unbounded caches.
	MaximumWeight() (limit int64, ok bool)
	ExpireAfterWrite() time.Duration
	ExpireAfterAccess() time.Duration
	RefreshAfterWrite() time.Duration
}

// Cache is a manually populated cache.
type Cache[K comparable, V any] interface {
	Inspector[K, V]

	GetIfPresent(key K) (V, bool)
	Put(key K, value V)
	Invalidate(key K)
	InvalidateAll()
}

// LoadingCache computes absent values through its Loader.
type LoadingCache[K comparable, V any] interface {
	Cache[K, V]

	// Get returns the cached value, loading it on a miss.
	Get(ctx context.Context, key K) (V, error)
	Loader() Loader[K, V]
}

// AsyncLoadingCache runs loads in the background and hands out futures.
// It wraps a synchronous cache; Synchronous exposes that core as a
// LoadingCache view backed by the same entries.
type AsyncLoadingCache[K comparable, V any] interface {
	Inspector[K, V]

	Get(ctx context.Context, key K) *Future[V]
	Synchronous() LoadingCache[K, V]
	Loader() Loader[K, V]
}
