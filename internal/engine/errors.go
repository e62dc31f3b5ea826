package engine

import "errors"

var (
	// ErrInvalidRules signals an unrecognized rule configuration.
	ErrInvalidRules = errors.New("invalid rule configuration")

	// ErrEmptyShoe signals an evaluation against a composition with no
	// cards left to draw.
	ErrEmptyShoe = errors.New("composition has no cards remaining")

	// ErrShortHand signals an evaluation of a hand with fewer than two
	// cards; there is no decision point before the initial deal completes.
	ErrShortHand = errors.New("player hand must contain at least two cards")
)
