package engine

import (
	"fmt"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
)

// Distribution is the exact probability distribution over dealer final
// outcomes. Blackjack is a two-card 21 off an ace or ten up-card and is
// kept separate from P21 because it beats any non-natural 21 and is
// resolved before the dealer draws.
type Distribution struct {
	P17        float64 `json:"p17"`
	P18        float64 `json:"p18"`
	P19        float64 `json:"p19"`
	P20        float64 `json:"p20"`
	P21        float64 `json:"p21"`
	PBust      float64 `json:"p_bust"`
	PBlackjack float64 `json:"p_blackjack"`
}

// Sum returns the total probability mass; exact arithmetic keeps it at
// 1 within floating tolerance.
func (d Distribution) Sum() float64 {
	return d.P17 + d.P18 + d.P19 + d.P20 + d.P21 + d.PBust + d.PBlackjack
}

func (d Distribution) pTotal(total int) float64 {
	switch total {
	case 17:
		return d.P17
	case 18:
		return d.P18
	case 19:
		return d.P19
	case 20:
		return d.P20
	case 21:
		return d.P21
	}
	return 0
}

func (d *Distribution) addTotal(total int, p float64) {
	switch total {
	case 17:
		d.P17 += p
	case 18:
		d.P18 += p
	case 19:
		d.P19 += p
	case 20:
		d.P20 += p
	case 21:
		d.P21 += p
	default:
		d.PBust += p
	}
}

func (d *Distribution) addScaled(other Distribution, w float64) {
	d.P17 += w * other.P17
	d.P18 += w * other.P18
	d.P19 += w * other.P19
	d.P20 += w * other.P20
	d.P21 += w * other.P21
	d.PBust += w * other.PBust
	d.PBlackjack += w * other.PBlackjack
}

// stateKey identifies a recursion state: the running total, whether an
// ace still counts as 11, and the exact remaining class counts. Equal
// keys reach identical sub-distributions, which is what makes the
// memoization sound.
type stateKey struct {
	total  int8
	soft   bool
	counts [deck.NumClasses]uint16
}

// addCard advances a (total, soft) pair by one card of the given value
// class, applying the ace rules: a new ace counts 11 if it fits, and a
// soft total that busts demotes its ace instead.
func addCard(total int, soft bool, class int) (int, bool) {
	if class == deck.AceClass {
		if total+11 <= 21 {
			return total + 11, true
		}
		return total + 1, soft
	}
	total += deck.ClassValue(class)
	if total > 21 && soft {
		return total - 10, false
	}
	return total, soft
}

// DealerDistribution computes the exact dealer outcome distribution for
// an up-card against a composition snapshot. The snapshot must already
// reflect every dealt card, the up-card included; the unseen hole card
// is enumerated from it.
func DealerDistribution(up deck.Rank, comp deck.Composition, rules Rules) (Distribution, error) {
	if err := rules.Validate(); err != nil {
		return Distribution{}, err
	}
	if comp.Remaining() == 0 {
		return Distribution{}, fmt.Errorf("dealer distribution: %w", ErrEmptyShoe)
	}
	e := newEvaluator(up, comp, rules)
	return e.dealerDist(), nil
}

// dealerDist enumerates the hole card and runs out the forced draws for
// each hypothesis, weighted by the live class counts.
func (e *evaluator) dealerDist() Distribution {
	if d, ok := e.distMemo[e.counts]; ok {
		return d
	}
	var d Distribution
	upVal := deck.ClassValue(e.upClass)
	upSoft := e.upClass == deck.AceClass
	rem := float64(e.remaining)
	for cls, n := range e.counts {
		if n == 0 {
			continue
		}
		w := float64(n) / rem
		t, soft := addCard(upVal, upSoft, cls)
		if t == 21 {
			// Ace or ten showing with a matching hole card: natural,
			// settled before any drawing.
			d.PBlackjack += w
			continue
		}
		e.draw(cls)
		sub := e.dealerRun(t, soft)
		e.undraw(cls)
		d.addScaled(sub, w)
	}
	e.distMemo[e.counts] = d
	return d
}

// dealerRun resolves the forced drawing rule from a two-or-more-card
// dealer state: hit below 17, hit soft 17 when configured, stand
// otherwise. Results are memoized on (total, soft, composition).
func (e *evaluator) dealerRun(total int, soft bool) Distribution {
	if total >= 18 || (total == 17 && !(soft && e.rules.DealerHitsSoft17)) {
		var d Distribution
		d.addTotal(total, 1)
		return d
	}
	key := e.key(total, soft)
	if d, ok := e.dealerMemo[key]; ok {
		return d
	}
	var d Distribution
	rem := float64(e.remaining)
	for cls, n := range e.counts {
		if n == 0 {
			continue
		}
		w := float64(n) / rem
		t, s := addCard(total, soft, cls)
		if t > 21 {
			d.PBust += w
			continue
		}
		e.draw(cls)
		sub := e.dealerRun(t, s)
		e.undraw(cls)
		d.addScaled(sub, w)
	}
	e.dealerMemo[key] = d
	return d
}
