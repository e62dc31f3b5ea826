// Package betting sizes bets from the true count. Money amounts use
// decimal arithmetic; only the count-derived multiplier is float math.
package betting

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	half    = decimal.RequireFromString("0.5")
	quarter = decimal.RequireFromString("0.25")
)

// Multiplier returns the recommended bet multiplier for a true count:
// flat at 1 unit for non-positive counts, growing by half a unit per
// point up to +2, then a quarter unit per point past that.
func Multiplier(trueCount float64) decimal.Decimal {
	tc := decimal.NewFromFloat(trueCount)
	switch {
	case trueCount <= 0:
		return one
	case trueCount <= 2:
		return one.Add(tc.Mul(half))
	default:
		return two.Add(tc.Sub(two).Mul(quarter))
	}
}

// Recommended returns unit x Multiplier(trueCount), rounded to cents.
func Recommended(unit decimal.Decimal, trueCount float64) decimal.Decimal {
	return unit.Mul(Multiplier(trueCount)).Round(2)
}
