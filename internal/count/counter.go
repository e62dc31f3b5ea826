// Package count implements Hi-Lo card counting over observed removals.
package count

import "github.com/MJE43/blackjack-edge-go/internal/deck"

// minDecksForTrue is the floor below which the true count divisor is
// clamped. With less than half a deck left the running/decks ratio is
// statistically meaningless, so the value is flagged unreliable.
const minDecksForTrue = 0.5

// Tag returns the Hi-Lo tag of a rank: +1 for 2-6, 0 for 7-9, -1 for
// ten-value cards and aces.
func Tag(r deck.Rank) int {
	switch {
	case r >= deck.Two && r <= deck.Six:
		return 1
	case r >= deck.Seven && r <= deck.Nine:
		return 0
	default:
		return -1
	}
}

// Counter accumulates the Hi-Lo running count. It holds no shoe state of
// its own; decks-remaining always comes from the composition so the two
// can never drift apart.
type Counter struct {
	running int
}

// Observe applies the Hi-Lo tag of one dealt card.
func (c *Counter) Observe(r deck.Rank) {
	c.running += Tag(r)
}

// Reset zeroes the running count, as on a reshuffle.
func (c *Counter) Reset() {
	c.running = 0
}

// Running returns the current running count.
func (c *Counter) Running() int {
	return c.running
}

// TrueCount converts a running count to a true count. When fewer than
// half a deck remains the divisor is clamped to 0.5 and the result is
// flagged unreliable.
func TrueCount(running int, decksRemaining float64) (tc float64, reliable bool) {
	if decksRemaining < minDecksForTrue {
		return float64(running) / minDecksForTrue, false
	}
	return float64(running) / decksRemaining, true
}

// State is a point-in-time view of the count, paired with the shoe
// figures it was derived from.
type State struct {
	Running        int     `json:"running"`
	True           float64 `json:"true"`
	Reliable       bool    `json:"reliable"`
	DecksRemaining float64 `json:"decks_remaining"`
	Penetration    float64 `json:"penetration"`
	Status         string  `json:"status"`
}

// StateFor derives the full count state from the live composition.
func (c *Counter) StateFor(comp deck.Composition) State {
	decks := comp.DecksRemaining()
	tc, reliable := TrueCount(c.running, decks)
	return State{
		Running:        c.running,
		True:           tc,
		Reliable:       reliable,
		DecksRemaining: decks,
		Penetration:    comp.Penetration(),
		Status:         statusLabel(tc),
	}
}

// statusLabel buckets the true count into the favorability labels the
// presentation layer shows next to the count.
func statusLabel(tc float64) string {
	switch {
	case tc >= 2:
		return "very favorable"
	case tc >= 1:
		return "favorable"
	case tc >= 0:
		return "neutral"
	case tc >= -1:
		return "unfavorable"
	default:
		return "very unfavorable"
	}
}
