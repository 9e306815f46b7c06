package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/cache"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps buckets in process. At most maxKeys buckets are held;
// the least recently used one is dropped first.
type MemoryStore struct {
	mu      sync.Mutex
	buckets *cache.LRU[string, *bucket]
}

// NewMemoryStore creates a store. A non-positive maxKeys means 10000.
func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &MemoryStore{buckets: cache.NewLRU[string, *bucket](maxKeys)}
}

func (s *MemoryStore) Take(_ context.Context, key string, cfg Config, now time.Time) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, _ := s.buckets.GetOrAdd(key, func() *bucket {
		return &bucket{tokens: cfg.Capacity, lastRefill: now}
	})

	intervals := int(min(int64(now.Sub(b.lastRefill)/cfg.RefillInterval), cfg.maxIntervals()))
	if intervals > 0 {
		b.tokens = min(b.tokens+intervals*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = now
	}

	res := Result{
		Limit:   cfg.Capacity,
		ResetAt: b.lastRefill.Add(cfg.RefillInterval),
	}
	if b.tokens > 0 {
		b.tokens--
		res.Allowed = true
	}
	res.Remaining = b.tokens
	return res, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets.Remove(key)
	return nil
}
