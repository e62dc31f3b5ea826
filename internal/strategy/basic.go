package strategy

import (
	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
	"github.com/MJE43/blackjack-edge-go/internal/hand"
)

// BasicAction returns the composition-neutral basic-strategy play for
// the hand against the up-card: the multi-deck chart, adjusted for the
// soft-17, double-after-split and surrender rule options. It assumes a
// full shoe and ignores the count entirely; Deviation compares the
// engine's composition-aware pick against it.
func BasicAction(cards []deck.Rank, up deck.Rank, rules engine.Rules) engine.Action {
	st := hand.Evaluate(cards)
	upVal := up.Value() // 2-10, 11 for the ace
	canDouble := st.Cards == 2

	if st.Pair {
		if a, ok := pairAction(cards[0].Class(), upVal, rules); ok {
			return a
		}
		// Unsplit pairs fall through to the total charts below.
	}

	if rules.SurrenderAllowed && st.Cards == 2 && !st.Pair && !st.Soft {
		switch {
		case st.Total == 16 && upVal >= 9:
			return engine.Surrender
		case st.Total == 15 && upVal == 10:
			return engine.Surrender
		}
	}

	if st.Soft {
		return softAction(st.Total, upVal, canDouble, rules)
	}
	return hardAction(st.Total, upVal, canDouble, rules)
}

// pairAction covers the split chart. The second return is false when the
// pair plays as its total instead of splitting.
func pairAction(class, upVal int, rules engine.Rules) (engine.Action, bool) {
	das := rules.DoubleAfterSplit
	switch class {
	case deck.AceClass:
		return engine.Split, true
	case deck.TenClass:
		return 0, false // stand on 20
	case deck.Nine.Class():
		if upVal <= 6 || upVal == 8 || upVal == 9 {
			return engine.Split, true
		}
		return 0, false
	case deck.Eight.Class():
		return engine.Split, true
	case deck.Seven.Class():
		if upVal <= 7 {
			return engine.Split, true
		}
		return 0, false
	case deck.Six.Class():
		if upVal >= 3 && upVal <= 6 || (upVal == 2 && das) {
			return engine.Split, true
		}
		return 0, false
	case deck.Four.Class():
		if das && (upVal == 5 || upVal == 6) {
			return engine.Split, true
		}
		return 0, false
	case deck.Two.Class(), deck.Three.Class():
		if upVal >= 4 && upVal <= 7 || (upVal <= 3 && das) {
			return engine.Split, true
		}
		return 0, false
	}
	// Fives play as hard 10.
	return 0, false
}

func softAction(total, upVal int, canDouble bool, rules engine.Rules) engine.Action {
	switch {
	case total >= 19:
		return engine.Stand
	case total == 18:
		lowDouble := 3
		if rules.DealerHitsSoft17 {
			lowDouble = 2
		}
		if canDouble && upVal >= lowDouble && upVal <= 6 {
			return engine.Double
		}
		if upVal <= 8 {
			return engine.Stand
		}
		return engine.Hit
	case total == 17:
		if canDouble && upVal >= 3 && upVal <= 6 {
			return engine.Double
		}
		return engine.Hit
	case total >= 15: // A,4 and A,5
		if canDouble && upVal >= 4 && upVal <= 6 {
			return engine.Double
		}
		return engine.Hit
	default: // A,2 and A,3
		if canDouble && (upVal == 5 || upVal == 6) {
			return engine.Double
		}
		return engine.Hit
	}
}

func hardAction(total, upVal int, canDouble bool, rules engine.Rules) engine.Action {
	switch {
	case total >= 17:
		return engine.Stand
	case total >= 13:
		if upVal <= 6 {
			return engine.Stand
		}
		return engine.Hit
	case total == 12:
		if upVal >= 4 && upVal <= 6 {
			return engine.Stand
		}
		return engine.Hit
	case total == 11:
		if canDouble && (upVal <= 10 || rules.DealerHitsSoft17) {
			return engine.Double
		}
		return engine.Hit
	case total == 10:
		if canDouble && upVal <= 9 {
			return engine.Double
		}
		return engine.Hit
	case total == 9:
		if canDouble && upVal >= 3 && upVal <= 6 {
			return engine.Double
		}
		return engine.Hit
	default:
		return engine.Hit
	}
}
