// Package session owns the live per-game state: the shoe composition
// and the Hi-Lo counter, updated together through a single entry point
// so the two can never be observed out of sync.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MJE43/blackjack-edge-go/internal/count"
	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

// Session is one independent game context. Multiple sessions can run
// side by side (separate tables, simulations); each guards its own
// state with its own mutex.
type Session struct {
	id uuid.UUID

	mu      sync.Mutex
	comp    deck.Composition
	counter count.Counter
}

// Deal is the combined view returned by DealCard: the post-removal
// composition snapshot and the count derived from it.
type Deal struct {
	Composition deck.Composition
	Count       count.State
}

// New creates a session with a freshly shuffled shoe.
func New(decks int) (*Session, error) {
	comp, err := deck.New(decks)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{id: uuid.New(), comp: comp}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// DealCard records one physically dealt card: the composition removal
// and the count update happen under one lock, or not at all. A removal
// for an exhausted rank fails with deck.ErrEmptyRank and leaves both
// composition and count untouched.
func (s *Session) DealCard(r deck.Rank) (Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.comp.Remove(r); err != nil {
		return Deal{}, fmt.Errorf("deal card: %w", err)
	}
	s.counter.Observe(r)
	return Deal{
		Composition: s.comp.Snapshot(),
		Count:       s.counter.StateFor(s.comp),
	}, nil
}

// Reset reshuffles the shoe with the given deck count and zeroes the
// running count.
func (s *Session) Reset(decks int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.comp.Reset(decks); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	s.counter.Reset()
	return nil
}

// Snapshot returns an immutable copy of the current composition.
func (s *Session) Snapshot() deck.Composition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comp.Snapshot()
}

// CountState returns the current count, derived from the live shoe.
func (s *Session) CountState() count.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter.StateFor(s.comp)
}
