package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store routes snapshots through Redis, for round trips that should cross a
// process boundary. Entries expire after TTL (0 = no expiry).
type Store struct {
	rdb redis.UniversalClient
	ns  string // logical namespace to avoid collisions
	ttl time.Duration
}

func New(client redis.UniversalClient, namespace string, ttl time.Duration) *Store {
	return &Store{rdb: client, ns: namespace, ttl: ttl}
}

func (s *Store) key(k string) string { return "snapshot:" + s.ns + ":" + k }

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Close(ctx context.Context) error { return s.rdb.Close() }
