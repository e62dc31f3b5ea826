package deck

import (
	"fmt"
	"strings"
)

// cardsPerDeck is the size of one standard deck.
const cardsPerDeck = 52

// suitsPerRank is how many cards of each rank a single deck holds.
const suitsPerRank = 4

// Composition is the exact multiset of ranks remaining in the shoe.
//
// It is a value type: assignment and Snapshot produce independent copies,
// so the recursive calculators can work over a frozen view while the live
// shoe keeps shrinking. Only Remove and Reset mutate a Composition, and
// both must be driven by cards that were actually dealt.
type Composition struct {
	counts    [NumRanks]int
	decks     int
	remaining int
}

// New returns a full shoe of the given number of decks.
func New(decks int) (Composition, error) {
	var c Composition
	if err := c.Reset(decks); err != nil {
		return Composition{}, err
	}
	return c, nil
}

// Reset restores the full shoe: 4 x decks cards of every rank.
func (c *Composition) Reset(decks int) error {
	if decks < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDeckCount, decks)
	}
	for i := range c.counts {
		c.counts[i] = suitsPerRank * decks
	}
	c.decks = decks
	c.remaining = cardsPerDeck * decks
	return nil
}

// Remove takes one card of the given rank out of the shoe. It fails with
// ErrEmptyRank, leaving the composition untouched, if none remain.
func (c *Composition) Remove(r Rank) error {
	i := int(r - Two)
	if i < 0 || i >= NumRanks {
		return fmt.Errorf("%w: %d", ErrUnknownRank, int(r))
	}
	if c.counts[i] == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyRank, r)
	}
	c.counts[i]--
	c.remaining--
	return nil
}

// Snapshot returns an independent copy of the composition.
func (c Composition) Snapshot() Composition { return c }

// Count returns how many cards of the rank remain.
func (c Composition) Count(r Rank) int {
	i := int(r - Two)
	if i < 0 || i >= NumRanks {
		return 0
	}
	return c.counts[i]
}

// Remaining returns the total number of cards left in the shoe.
func (c Composition) Remaining() int { return c.remaining }

// Decks returns the configured number of decks.
func (c Composition) Decks() int { return c.decks }

// DecksRemaining returns the remaining cards expressed in decks.
func (c Composition) DecksRemaining() float64 {
	return float64(c.remaining) / cardsPerDeck
}

// Penetration returns the fraction of the shoe already dealt.
func (c Composition) Penetration() float64 {
	total := cardsPerDeck * c.decks
	if total == 0 {
		return 0
	}
	return 1 - float64(c.remaining)/float64(total)
}

// Prob returns the probability that the next card drawn has the rank.
func (c Composition) Prob(r Rank) float64 {
	if c.remaining == 0 {
		return 0
	}
	return float64(c.Count(r)) / float64(c.remaining)
}

// ProbTenValue returns the probability of drawing a ten-value card.
func (c Composition) ProbTenValue() float64 {
	if c.remaining == 0 {
		return 0
	}
	n := c.Count(Ten) + c.Count(Jack) + c.Count(Queen) + c.Count(King)
	return float64(n) / float64(c.remaining)
}

// ProbAce returns the probability of drawing an ace.
func (c Composition) ProbAce() float64 { return c.Prob(Ace) }

// ProbLow returns the probability of drawing a 2-6 (the Hi-Lo low band).
func (c Composition) ProbLow() float64 {
	if c.remaining == 0 {
		return 0
	}
	n := 0
	for r := Two; r <= Six; r++ {
		n += c.Count(r)
	}
	return float64(n) / float64(c.remaining)
}

// ProbHigh returns the probability of drawing a ten-value card or ace.
func (c Composition) ProbHigh() float64 {
	return c.ProbTenValue() + c.ProbAce()
}

// ClassCounts collapses the per-rank counts into the 10 blackjack value
// classes used by the recursive calculators (index 0 = ace, 9 = ten-value).
func (c Composition) ClassCounts() [NumClasses]int {
	var out [NumClasses]int
	for r := Two; r <= Ace; r++ {
		out[r.Class()] += c.Count(r)
	}
	return out
}

// Digest returns a canonical string for the composition, suitable as a
// memoization or cache key. Equal compositions produce equal digests.
func (c Composition) Digest() string {
	var b strings.Builder
	fmt.Fprintf(&b, "d%d:", c.decks)
	for i, n := range c.counts {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", n)
	}
	return b.String()
}
