package session

import (
	"context"
	"sync"

	"bookctl/internal/models"
)

// MemoryStore holds the session in process memory. Used in tests and as
// the failover fallback; it does not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	session models.Session
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(ctx context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.present = true
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) (models.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present || !s.session.Valid() {
		return models.Session{}, false, nil
	}
	return s.session, true, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = models.Session{}
	s.present = false
	return nil
}
