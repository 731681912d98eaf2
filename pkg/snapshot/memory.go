package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps the last saved snapshot in memory. Save and Load both
// copy the map, so callers can mutate their side freely.
type MemoryStore struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored snapshot.
func (s *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	copied := make(Snapshot, len(snap))
	for name, value := range snap {
		copied[name] = value
	}

	s.mu.Lock()
	s.snap = copied
	s.mu.Unlock()
	return nil
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNoSnapshot
	}
	copied := make(Snapshot, len(s.snap))
	for name, value := range s.snap {
		copied[name] = value
	}
	return copied, nil
}
