package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

func TestDealCardUpdatesBothSides(t *testing.T) {
	s, err := New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	d, err := s.DealCard(deck.Five)
	if err != nil {
		t.Fatalf("DealCard failed: %v", err)
	}
	if d.Composition.Remaining() != 311 {
		t.Errorf("expected 311 cards after one deal, got %d", d.Composition.Remaining())
	}
	if d.Composition.Count(deck.Five) != 23 {
		t.Errorf("expected 23 fives, got %d", d.Composition.Count(deck.Five))
	}
	if d.Count.Running != 1 {
		t.Errorf("dealing a five must move the running count to +1, got %d", d.Count.Running)
	}
}

func TestDealCardAtomicOnFailure(t *testing.T) {
	s, err := New(1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := s.DealCard(deck.Ace); err != nil {
			t.Fatalf("deal %d failed: %v", i+1, err)
		}
	}
	before := s.CountState()
	snapBefore := s.Snapshot()

	_, err = s.DealCard(deck.Ace)
	if !errors.Is(err, deck.ErrEmptyRank) {
		t.Fatalf("expected ErrEmptyRank, got %v", err)
	}
	if s.CountState() != before {
		t.Error("failed deal must leave the count untouched")
	}
	if s.Snapshot() != snapBefore {
		t.Error("failed deal must leave the composition untouched")
	}
}

func TestRemainingDecreasesByOnePerDeal(t *testing.T) {
	s, err := New(2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	prev := s.Snapshot().Remaining()
	for _, r := range []deck.Rank{deck.Two, deck.King, deck.Ace, deck.Nine, deck.Nine} {
		d, err := s.DealCard(r)
		if err != nil {
			t.Fatalf("DealCard(%s) failed: %v", r, err)
		}
		if d.Composition.Remaining() != prev-1 {
			t.Fatalf("remaining went %d -> %d, want a decrease of exactly 1", prev, d.Composition.Remaining())
		}
		prev = d.Composition.Remaining()
	}
}

func TestResetClearsShoeAndCount(t *testing.T) {
	s, err := New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, r := range []deck.Rank{deck.Two, deck.Three, deck.Four} {
		if _, err := s.DealCard(r); err != nil {
			t.Fatalf("DealCard failed: %v", err)
		}
	}
	if err := s.Reset(8); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.Remaining() != 416 || snap.Decks() != 8 {
		t.Errorf("expected a full 8-deck shoe, got %d cards of %d decks", snap.Remaining(), snap.Decks())
	}
	if st := s.CountState(); st.Running != 0 {
		t.Errorf("reset must zero the running count, got %d", st.Running)
	}
}

func TestResetInvalidDeckCount(t *testing.T) {
	s, err := New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.Reset(0); !errors.Is(err, deck.ErrInvalidDeckCount) {
		t.Errorf("expected ErrInvalidDeckCount, got %v", err)
	}
}

func TestConcurrentDeals(t *testing.T) {
	s, err := New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var wg sync.WaitGroup
	const deals = 100
	wg.Add(deals)
	for i := 0; i < deals; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.DealCard(deck.Seven); err != nil {
				t.Errorf("DealCard failed: %v", err)
			}
		}()
	}
	wg.Wait()
	// 7s are count-neutral, so only the removals should be visible.
	snap := s.Snapshot()
	if snap.Remaining() != 312-deals {
		t.Errorf("expected %d cards, got %d", 312-deals, snap.Remaining())
	}
	if st := s.CountState(); st.Running != 0 {
		t.Errorf("hundred sevens should leave the count at 0, got %d", st.Running)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, _ := New(1)
	b, _ := New(1)
	if a.ID() == b.ID() {
		t.Error("sessions must get distinct IDs")
	}
}
