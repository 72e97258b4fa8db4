package cache

import (
	"context"
	"sync/atomic"

	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
)

// MemoryStore keeps the cached snapshot in process. Store replaces the whole
// value so readers never see a partially written snapshot.
type MemoryStore struct {
	current atomic.Pointer[domain.CachedRates]
}

var _ portsrepo.SnapshotStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (domain.CachedRates, bool, error) {
	p := s.current.Load()
	if p == nil {
		return domain.CachedRates{}, false, nil
	}
	return *p, true, nil
}

func (s *MemoryStore) Store(_ context.Context, cached domain.CachedRates) error {
	s.current.Store(&cached)
	return nil
}
