package count

import (
	"math"
	"testing"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

func TestHiLoTags(t *testing.T) {
	tests := []struct {
		rank deck.Rank
		want int
	}{
		{deck.Two, 1}, {deck.Three, 1}, {deck.Four, 1}, {deck.Five, 1}, {deck.Six, 1},
		{deck.Seven, 0}, {deck.Eight, 0}, {deck.Nine, 0},
		{deck.Ten, -1}, {deck.Jack, -1}, {deck.Queen, -1}, {deck.King, -1}, {deck.Ace, -1},
	}
	for _, tt := range tests {
		if got := Tag(tt.rank); got != tt.want {
			t.Errorf("Tag(%s) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestRunningCount(t *testing.T) {
	var c Counter
	for _, r := range []deck.Rank{deck.Two, deck.Five, deck.Ten, deck.Seven, deck.Ace, deck.Six} {
		c.Observe(r)
	}
	// +1 +1 -1 0 -1 +1 = +1
	if c.Running() != 1 {
		t.Errorf("expected running count 1, got %d", c.Running())
	}
	c.Reset()
	if c.Running() != 0 {
		t.Errorf("reset must zero the running count, got %d", c.Running())
	}
}

func TestTrueCountIdentity(t *testing.T) {
	tests := []struct {
		running int
		decks   float64
		want    float64
	}{
		{6, 3, 2},
		{-4, 2, -2},
		{5, 0.5, 10},
		{0, 4.25, 0},
	}
	for _, tt := range tests {
		got, reliable := TrueCount(tt.running, tt.decks)
		if !reliable {
			t.Errorf("TrueCount(%d, %f) should be reliable", tt.running, tt.decks)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("TrueCount(%d, %f) = %f, want %f", tt.running, tt.decks, got, tt.want)
		}
	}
}

func TestTrueCountFloor(t *testing.T) {
	got, reliable := TrueCount(3, 0.25)
	if reliable {
		t.Error("under half a deck the true count must be flagged unreliable")
	}
	if got != 6 {
		t.Errorf("clamped true count should divide by 0.5, got %f", got)
	}
}

func TestStateFor(t *testing.T) {
	comp, err := deck.New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var c Counter
	// Deal a full deck of low cards: 2s through 6s plus 32 more twos
	// would exceed the shoe, so use 2-6 across suits of one deck: 20 cards.
	lows := []deck.Rank{deck.Two, deck.Three, deck.Four, deck.Five, deck.Six}
	for _, r := range lows {
		for i := 0; i < 4; i++ {
			if err := comp.Remove(r); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			c.Observe(r)
		}
	}
	st := c.StateFor(comp)
	if st.Running != 20 {
		t.Errorf("expected running 20, got %d", st.Running)
	}
	wantDecks := float64(312-20) / 52
	if math.Abs(st.DecksRemaining-wantDecks) > 1e-12 {
		t.Errorf("decks remaining = %f, want %f", st.DecksRemaining, wantDecks)
	}
	if math.Abs(st.True-20/wantDecks) > 1e-12 {
		t.Errorf("true count = %f, want %f", st.True, 20/wantDecks)
	}
	if !st.Reliable {
		t.Error("true count should be reliable with over five decks left")
	}
	if st.Status != "very favorable" {
		t.Errorf("expected status 'very favorable', got %q", st.Status)
	}
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		tc   float64
		want string
	}{
		{3, "very favorable"},
		{1.5, "favorable"},
		{0, "neutral"},
		{-0.5, "unfavorable"},
		{-3, "very unfavorable"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.tc); got != tt.want {
			t.Errorf("statusLabel(%f) = %q, want %q", tt.tc, got, tt.want)
		}
	}
}
