// Package strategy ranks evaluated actions and compares them against
// composition-neutral basic strategy to surface count-based deviations.
package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
)

// ErrIllegalAction signals a request for an action the rules or hand
// state forbid. It is surfaced as-is, never downgraded to a different
// action.
var ErrIllegalAction = errors.New("action not legal for this hand")

// Recommend filters the EV table to the caller's legal actions and
// returns the maximum-EV one, breaking exact ties toward the least
// committing action (Stand < Hit < Double < Split < Surrender).
//
// Every listed action must actually appear in the result; listing one
// the evaluated hand forbids is a tracking bug upstream and fails with
// ErrIllegalAction.
func Recommend(res engine.Result, legal []engine.Action) (engine.Action, error) {
	if len(legal) == 0 {
		return 0, fmt.Errorf("recommend: %w: empty legal action set", ErrIllegalAction)
	}
	allowed := make(map[engine.Action]bool, len(legal))
	for _, a := range legal {
		if _, ok := res.EV(a); !ok {
			return 0, fmt.Errorf("recommend: %w: %s", ErrIllegalAction, a)
		}
		allowed[a] = true
	}
	best := engine.Stand
	bestEV := math.Inf(-1)
	for _, a := range engine.ActionOrder {
		if !allowed[a] {
			continue
		}
		ev, _ := res.EV(a)
		if ev > bestEV {
			best = a
			bestEV = ev
		}
	}
	return best, nil
}

// Deviation reports whether the composition-aware recommendation departs
// from the full-shoe basic-strategy play for the same situation. This is
// the count-based edge signal the presentation layer surfaces.
func Deviation(recommended engine.Action, cards []deck.Rank, up deck.Rank, rules engine.Rules) bool {
	return recommended != BasicAction(cards, up, rules)
}
