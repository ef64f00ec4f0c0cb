package check

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions keeps one orchestrator per presentation session, in memory only
type Sessions struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]*Orchestrator
	factory func() *Orchestrator
}

// NewSessions creates a registry that builds orchestrators with factory
func NewSessions(factory func() *Orchestrator) *Sessions {
	return &Sessions{
		items:   make(map[uuid.UUID]*Orchestrator),
		factory: factory,
	}
}

// Create starts a new session on a fresh form
func (s *Sessions) Create() (uuid.UUID, *Orchestrator) {
	id := uuid.New()
	o := s.factory()

	s.mu.Lock()
	s.items[id] = o
	s.mu.Unlock()

	return id, o
}

// Get returns the orchestrator of a session
func (s *Sessions) Get(id uuid.UUID) (*Orchestrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return o, nil
}

// Delete ends a session
func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
