package deck

import "errors"

var (
	// ErrEmptyRank signals a removal for a rank with no cards left in the
	// shoe. Every removal must correspond to a physically dealt card, so
	// hitting this means the caller's tracking has diverged from the table.
	ErrEmptyRank = errors.New("no cards of rank remaining in shoe")

	// ErrInvalidDeckCount signals a reset with a non-positive deck count.
	ErrInvalidDeckCount = errors.New("deck count must be positive")

	// ErrUnknownRank signals an unparseable rank string.
	ErrUnknownRank = errors.New("unknown rank")
)
