// Package hand evaluates blackjack hands: totals with ace demotion,
// soft/bust/blackjack/pair flags. Pure functions, no shoe dependency.
package hand

import (
	"strings"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

// State is the derived view of a hand. It is recomputed from scratch on
// every evaluation; callers treat it as an immutable snapshot.
type State struct {
	Cards     int  `json:"cards"`
	Total     int  `json:"total"`
	HardTotal int  `json:"hard_total"`
	Soft      bool `json:"soft"`
	Bust      bool `json:"bust"`
	Blackjack bool `json:"blackjack"`
	Pair      bool `json:"pair"`
}

// Evaluate computes the state of an ordered hand. Aces start at 11 and
// are demoted to 1 one at a time while the total exceeds 21, so A+A+9
// comes out as a hard 21.
func Evaluate(cards []deck.Rank) State {
	total := 0
	aces := 0
	for _, r := range cards {
		total += r.Value()
		if r == deck.Ace {
			aces++
		}
	}
	hard := total - 10*aces
	acesAsEleven := aces
	for total > 21 && acesAsEleven > 0 {
		total -= 10
		acesAsEleven--
	}

	st := State{
		Cards:     len(cards),
		Total:     total,
		HardTotal: hard,
		Soft:      acesAsEleven > 0 && total <= 21,
		Bust:      total > 21,
	}
	if len(cards) == 2 {
		st.Blackjack = total == 21 && aces == 1
		st.Pair = cards[0].Class() == cards[1].Class()
	}
	return st
}

// Format renders a hand like "A 10" for logs and API responses.
func Format(cards []deck.Rank) string {
	parts := make([]string, len(cards))
	for i, r := range cards {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
