package workspace

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store maps session IDs to workspaces. Sessions are created per page load,
// so the TTL sweep on Create is a memory bound, not a lifecycle feature: a
// reloaded page never asks for its old workspace again.
type Store struct {
	mu   sync.Mutex
	ttl  time.Duration
	byID map[string]*Workspace
}

// NewStore creates a store evicting workspaces idle longer than ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:  ttl,
		byID: make(map[string]*Workspace),
	}
}

// Create allocates a fresh workspace under a new session ID, sweeping stale
// workspaces first.
func (s *Store) Create() *Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictStale()

	ws := New(uuid.New().String())
	s.byID[ws.ID()] = ws
	log.Debug().Str("sessionId", ws.ID()).Int("active", len(s.byID)).Msg("Workspace created")
	return ws
}

// Get returns the workspace for the session ID and refreshes its idle timer.
func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	ws, ok := s.byID[id]
	s.mu.Unlock()
	if ok {
		ws.touch()
	}
	return ws, ok
}

// Len reports the number of active workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// evictStale drops idle workspaces. Caller holds s.mu; the per-workspace
// lastSeen read takes the workspace lock, which is never held while s.mu is
// acquired, so lock order is safe.
func (s *Store) evictStale() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	for id, ws := range s.byID {
		if ws.idleSince().Before(cutoff) {
			delete(s.byID, id)
			log.Debug().Str("sessionId", id).Msg("Workspace evicted after idle timeout")
		}
	}
}
