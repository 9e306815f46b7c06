package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/dexa"
)

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	uploads map[string][]Upload // by session, oldest first
	ids     map[string]struct{}
	labs    map[string]dexa.Inputs
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		uploads: make(map[string][]Upload),
		ids:     make(map[string]struct{}),
		labs:    make(map[string]dexa.Inputs),
		now:     time.Now,
	}
}

func (s *MemoryStore) CreateUpload(_ context.Context, u Upload) error {
	if err := validateUpload(u); err != nil {
		return err
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[u.ID]; exists {
		return ErrDuplicateID
	}
	s.ids[u.ID] = struct{}{}
	s.uploads[u.SessionID] = append(s.uploads[u.SessionID], u)
	return nil
}

func (s *MemoryStore) ListUploads(_ context.Context, sessionID string, limit int) ([]Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := slices.Clone(s.uploads[sessionID])
	slices.Reverse(list)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *MemoryStore) LatestUpload(_ context.Context, sessionID string) (Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.uploads[sessionID]
	if len(list) == 0 {
		return Upload{}, ErrNotFound
	}
	return list[len(list)-1], nil
}

func (s *MemoryStore) SaveLabs(_ context.Context, sessionID string, in dexa.Inputs) error {
	if sessionID == "" {
		return ErrInvalidInput
	}
	s.mu.Lock()
	s.labs[sessionID] = in
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetLabs(_ context.Context, sessionID string) (dexa.Inputs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in, ok := s.labs[sessionID]
	if !ok {
		return dexa.Inputs{}, ErrNotFound
	}
	return in, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
