package session

import (
	"fmt"
	"sync"
)

// InMemoryRepo is an in-memory implementation of Repo. A single portal
// instance serves a single interactive user base, so sessions live in a
// map guarded by a RWMutex; there is no eviction beyond Clear.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Session),
	}
}

// Get retrieves the session for a session ID. Unknown IDs yield the zero
// Session rather than an error.
func (r *InMemoryRepo) Get(sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[sessionID].Normalized(), nil
}

// Set merges the update into the stored session, creating it if needed
func (r *InMemoryRepo) Set(sessionID string, update Update) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = update.apply(r.sessions[sessionID])
	return nil
}

// Clear removes the whole session
func (r *InMemoryRepo) Clear(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
