package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore provides an in-memory cache useful for single-instance
// deployments, testing, and local development.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty memory-backed cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Connect implements the Store interface. The memory store has no backing
// connection to establish.
func (s *MemoryStore) Connect(_ context.Context) error {
	return nil
}

// Get implements the Store interface.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !item.expiresAt.IsZero() && !now.Before(item.expiresAt) {
		delete(s.entries, key)
		return nil, ErrMiss
	}

	out := make([]byte, len(item.value))
	copy(out, item.value)
	return out, nil
}

// Set implements the Store interface. Concurrent writers race benignly;
// the last write wins.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	item := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}
	s.entries[key] = item
	return nil
}

// Invalidate implements the Store interface.
func (s *MemoryStore) Invalidate(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Close implements the Store interface.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	return nil
}

// CleanupExpired removes up to limit expired entries and reports how many were dropped.
func (s *MemoryStore) CleanupExpired(_ context.Context, limit int) int {
	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}

	removed := 0
	for key, item := range s.entries {
		if item.expiresAt.IsZero() || now.Before(item.expiresAt) {
			continue
		}
		delete(s.entries, key)
		removed++
		if removed >= limit {
			break
		}
	}
	return removed
}
