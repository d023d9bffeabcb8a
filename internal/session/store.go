// Package session keeps the per-sender rolling conversation history.
// Sessions are process-local: there is no cross-instance coherence.
package session

import (
	"sync"
	"time"

	"github.com/siteflow/orderbot/internal/config"
	"github.com/siteflow/orderbot/internal/domain"
)

type entry struct {
	turns       []domain.Turn
	lastUpdated time.Time
}

// Store holds one bounded conversation per sender with lazy TTL expiry.
// Every public operation sweeps expired sessions first, so expiry cost is
// bounded by call frequency rather than a background timer.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	maxTurns int
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      config.SessionTTL,
		maxTurns: config.SessionMaxTurns,
		now:      time.Now,
	}
}

func (s *Store) sweepLocked() {
	now := s.now()
	for sender, e := range s.sessions {
		if now.Sub(e.lastUpdated) > s.ttl {
			delete(s.sessions, sender)
		}
	}
}

// History returns a copy of the sender's turns, oldest first.
func (s *Store) History(sender string) []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	e, ok := s.sessions[sender]
	if !ok {
		return nil
	}
	out := make([]domain.Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// Append adds a turn to the sender's session, creating it if absent.
// The session keeps at most the last maxTurns turns.
func (s *Store) Append(sender string, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	e, ok := s.sessions[sender]
	if !ok {
		e = &entry{}
		s.sessions[sender] = e
	}
	e.turns = append(e.turns, turn)
	e.lastUpdated = s.now()

	if len(e.turns) > s.maxTurns {
		e.turns = e.turns[len(e.turns)-s.maxTurns:]
	}
}

// Reset removes the sender's session unconditionally.
func (s *Store) Reset(sender string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	delete(s.sessions, sender)
}

// ActiveCount reports the number of non-expired sessions.
func (s *Store) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	return len(s.sessions)
}
