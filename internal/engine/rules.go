package engine

import "fmt"

// Rules is the table rule configuration an evaluation runs under. It is
// supplied by the caller per decision point; the engine never stores one.
type Rules struct {
	DealerHitsSoft17 bool    `json:"dealer_hits_soft17"`
	BlackjackPayout  float64 `json:"blackjack_payout"`
	DoubleAfterSplit bool    `json:"double_after_split"`
	SurrenderAllowed bool    `json:"surrender_allowed"`
	ResplitAllowed   bool    `json:"resplit_allowed"`
	MaxSplitHands    int     `json:"max_split_hands"`
}

// DefaultRules is a common six-deck game: dealer stands on soft 17,
// naturals pay 3:2, double after split and late surrender allowed,
// resplit to four hands.
func DefaultRules() Rules {
	return Rules{
		DealerHitsSoft17: false,
		BlackjackPayout:  1.5,
		DoubleAfterSplit: true,
		SurrenderAllowed: true,
		ResplitAllowed:   true,
		MaxSplitHands:    4,
	}
}

// Validate rejects configurations the engine does not recognize.
func (r Rules) Validate() error {
	if r.BlackjackPayout != 1.5 && r.BlackjackPayout != 1.2 {
		return fmt.Errorf("%w: blackjack payout must be 1.5 or 1.2, got %g", ErrInvalidRules, r.BlackjackPayout)
	}
	if r.MaxSplitHands < 2 {
		return fmt.Errorf("%w: max split hands must be at least 2, got %d", ErrInvalidRules, r.MaxSplitHands)
	}
	return nil
}
