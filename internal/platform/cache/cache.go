package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or its entry has expired.
var ErrMiss = errors.New("cache: miss")

// Store is a TTL key/value cache. Implementations must treat expired
// entries as absent and must never fail a read because of a stale write.
type Store interface {
	Connect(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}
