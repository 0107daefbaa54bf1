// internal/game/registry.go
//
// In-memory registry of live sessions.
// Sessions are ephemeral by design: a game abandoned before completion
// leaves no trace in the game log, and all registry state is lost when
// the process restarts.

package game

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionNotFound is returned by Registry.Get for unknown IDs.
var ErrSessionNotFound = errors.New("game: session not found")

// Registry is the lookup interface for live sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Registry interface {
	// Save registers or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}

// memoryRegistry is a map-based Registry guarded by an RWMutex.
type memoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry constructs an in-memory Registry.
func NewRegistry() Registry {
	return &memoryRegistry{sessions: make(map[string]*Session)}
}

func (m *memoryRegistry) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memoryRegistry) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

func (m *memoryRegistry) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
