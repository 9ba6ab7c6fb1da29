package auth

import (
	"context"
	"sync"

	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/domain"
	"github.com/karthik14985-bit/voting-system-by-Karthi/internal/storage"
)

// InMemorySessionStore keeps sessions in a map. It is the single-process
// default and the test fake.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *InMemorySessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return domain.Session{}, storage.ErrNotFound
}

func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
