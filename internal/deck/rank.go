package deck

import "fmt"

// Rank identifies one of the 13 card ranks. Suits are irrelevant to
// composition-dependent strategy, so they are not modeled.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks in a deck.
const NumRanks = 13

// NumClasses is the number of blackjack value classes: the ace, 2-9,
// and the ten-value class (10/J/Q/K).
const NumClasses = 10

// AceClass and TenClass index the value-class array used by the
// recursive calculators. Classes 1-8 are the ranks 2-9.
const (
	AceClass = 0
	TenClass = 9
)

var rankNames = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6",
	Seven: "7", Eight: "8", Nine: "9", Ten: "10",
	Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

// Ranks returns all 13 ranks in ascending order.
func Ranks() []Rank {
	out := make([]Rank, 0, NumRanks)
	for r := Two; r <= Ace; r++ {
		out = append(out, r)
	}
	return out
}

// Value returns the blackjack value of the rank, with the ace at its
// soft value of 11. Hand evaluation demotes aces to 1 as needed.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Class returns the value-class index of the rank: 0 for the ace,
// 1-8 for ranks 2-9, 9 for ten-value cards.
func (r Rank) Class() int {
	switch {
	case r == Ace:
		return AceClass
	case r >= Ten:
		return TenClass
	default:
		return int(r) - 1
	}
}

// IsTenValue reports whether the rank counts as ten.
func (r Rank) IsTenValue() bool {
	return r >= Ten && r <= King
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// ParseRank converts an API string like "2", "10", "J" or "A" to a Rank.
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	// "T" is a common shorthand in strategy literature.
	if s == "T" {
		return Ten, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// ClassValue returns the blackjack value of a value class, with the
// ace at 11.
func ClassValue(class int) int {
	switch class {
	case AceClass:
		return 11
	case TenClass:
		return 10
	default:
		return class + 1
	}
}

// ClassRank returns a representative rank for a value class, used when
// a concrete card must stand in for the whole class (chart generation).
func ClassRank(class int) Rank {
	switch class {
	case AceClass:
		return Ace
	case TenClass:
		return Ten
	default:
		return Rank(class + 1)
	}
}
