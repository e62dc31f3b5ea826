package engine

import (
	"math"
	"testing"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

// shoeWithout returns a six-deck composition with the given cards dealt.
func shoeWithout(t *testing.T, cards ...deck.Rank) deck.Composition {
	t.Helper()
	comp, err := deck.New(6)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, r := range cards {
		if err := comp.Remove(r); err != nil {
			t.Fatalf("Remove(%s) failed: %v", r, err)
		}
	}
	return comp
}

func TestDealerDistributionSumsToOne(t *testing.T) {
	for _, up := range deck.Ranks() {
		comp := shoeWithout(t, up)
		d, err := DealerDistribution(up, comp, DefaultRules())
		if err != nil {
			t.Fatalf("up %s: %v", up, err)
		}
		if math.Abs(d.Sum()-1) > 1e-9 {
			t.Errorf("up %s: probabilities sum to %.12f, want 1", up, d.Sum())
		}
	}
}

func TestDealerBlackjackProbability(t *testing.T) {
	// Ace up: natural iff the hole card is one of the 96 tens among the
	// 311 unseen cards.
	comp := shoeWithout(t, deck.Ace)
	d, err := DealerDistribution(deck.Ace, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	want := 96.0 / 311.0
	if math.Abs(d.PBlackjack-want) > 1e-12 {
		t.Errorf("ace up: P(blackjack) = %.12f, want %.12f", d.PBlackjack, want)
	}

	// Ten up: natural iff the hole card is one of the 24 aces.
	comp = shoeWithout(t, deck.Ten)
	d, err = DealerDistribution(deck.Ten, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	want = 24.0 / 311.0
	if math.Abs(d.PBlackjack-want) > 1e-12 {
		t.Errorf("ten up: P(blackjack) = %.12f, want %.12f", d.PBlackjack, want)
	}

	// A six can never make a natural.
	comp = shoeWithout(t, deck.Six)
	d, err = DealerDistribution(deck.Six, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	if d.PBlackjack != 0 {
		t.Errorf("six up: P(blackjack) = %f, want 0", d.PBlackjack)
	}
}

func TestDealerBustProbabilitySixUp(t *testing.T) {
	comp := shoeWithout(t, deck.Six)
	d, err := DealerDistribution(deck.Six, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	// Published six-up bust probability sits around 0.42 under S17.
	if d.PBust < 0.40 || d.PBust > 0.45 {
		t.Errorf("six up: P(bust) = %f, expected around 0.42", d.PBust)
	}
}

func TestTenClassRanksShareDistribution(t *testing.T) {
	rules := DefaultRules()
	dk, err := DealerDistribution(deck.King, shoeWithout(t, deck.King), rules)
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	dq, err := DealerDistribution(deck.Queen, shoeWithout(t, deck.Queen), rules)
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	if dk != dq {
		t.Errorf("king and queen up-cards must produce identical distributions:\n%+v\n%+v", dk, dq)
	}
}

func TestHitSoft17ChangesDistribution(t *testing.T) {
	comp := shoeWithout(t, deck.Ace)
	s17, err := DealerDistribution(deck.Ace, comp, DefaultRules())
	if err != nil {
		t.Fatalf("S17 distribution failed: %v", err)
	}
	h17Rules := DefaultRules()
	h17Rules.DealerHitsSoft17 = true
	h17, err := DealerDistribution(deck.Ace, comp, h17Rules)
	if err != nil {
		t.Fatalf("H17 distribution failed: %v", err)
	}
	if math.Abs(h17.Sum()-1) > 1e-9 {
		t.Errorf("H17 probabilities sum to %.12f, want 1", h17.Sum())
	}
	// Re-hitting soft 17 trades 17s for everything else.
	if h17.P17 >= s17.P17 {
		t.Errorf("hitting soft 17 must lower P17: s17=%f h17=%f", s17.P17, h17.P17)
	}
	if h17.PBust <= s17.PBust {
		t.Errorf("hitting soft 17 must raise bust probability: s17=%f h17=%f", s17.PBust, h17.PBust)
	}
}

func TestDealerDistributionDeterministic(t *testing.T) {
	comp := shoeWithout(t, deck.Nine, deck.Ten, deck.Six, deck.Two)
	a, err := DealerDistribution(deck.Nine, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	b, err := DealerDistribution(deck.Nine, comp, DefaultRules())
	if err != nil {
		t.Fatalf("DealerDistribution failed: %v", err)
	}
	if a != b {
		t.Errorf("identical inputs must yield identical distributions")
	}
}

func TestDealerDistributionEmptyShoe(t *testing.T) {
	comp, _ := deck.New(1)
	for _, r := range deck.Ranks() {
		for i := 0; i < 4; i++ {
			if err := comp.Remove(r); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
		}
	}
	if _, err := DealerDistribution(deck.Five, comp, DefaultRules()); err == nil {
		t.Error("expected an error for an exhausted composition")
	}
}

func TestDealerDistributionInvalidRules(t *testing.T) {
	bad := DefaultRules()
	bad.BlackjackPayout = 2.0
	if _, err := DealerDistribution(deck.Five, shoeWithout(t, deck.Five), bad); err == nil {
		t.Error("expected an error for an unrecognized payout")
	}
}
