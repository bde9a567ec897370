// Package store defines the optional byte store an encoded snapshot can be
// routed through during a round trip, so that a persistence medium sits
// between serialize and reconstruct.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the []byte previously passed to Put for the same key, with no prepended or
// appended metadata and no re-encoding. Lossy or approximate stores make the
// round trip itself untestable.
package store

import "context"

// Store is a minimal byte store.
type Store interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
