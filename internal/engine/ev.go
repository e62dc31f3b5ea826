package engine

import (
	"fmt"
	"math"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/hand"
)

// Action is a player decision. Declaration order is the tie-break order
// when expected values are exactly equal: the action committing the
// least comes first.
type Action int

const (
	Stand Action = iota
	Hit
	Double
	Split
	Surrender
)

var actionNames = [...]string{"stand", "hit", "double", "split", "surrender"}

// ActionOrder lists every action in tie-break order.
var ActionOrder = [...]Action{Stand, Hit, Double, Split, Surrender}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText renders the action as its lowercase name for JSON.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a lowercase action name.
func (a *Action) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if name == string(text) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", string(text))
}

// Result is the per-action EV table for one decision point, in units of
// the original bet. Only actions legal for the hand appear in EVs.
// Results are ephemeral: computed fresh per decision, never stored.
type Result struct {
	EVs         map[Action]float64 `json:"evs"`
	Recommended Action             `json:"recommended"`
}

// EV returns the expected value of an action and whether it was legal.
func (r Result) EV(a Action) (float64, bool) {
	v, ok := r.EVs[a]
	return v, ok
}

// playerEV carries the stand and optimal-continuation EVs of one player
// state so the recursion computes each state once.
type playerEV struct {
	stand float64
	hit   float64
}

// evaluator runs the recursive calculators over one frozen snapshot.
// The class counts are mutated draw/undraw style during recursion and
// always restored before returning, so a finished evaluation leaves the
// counts exactly as it found them.
type evaluator struct {
	rules      Rules
	upClass    int
	counts     [deck.NumClasses]int
	remaining  int
	dealerMemo map[stateKey]Distribution
	distMemo   map[[deck.NumClasses]int]Distribution
	playerMemo map[stateKey]playerEV
}

func newEvaluator(up deck.Rank, comp deck.Composition, rules Rules) *evaluator {
	return &evaluator{
		rules:      rules,
		upClass:    up.Class(),
		counts:     comp.ClassCounts(),
		remaining:  comp.Remaining(),
		dealerMemo: make(map[stateKey]Distribution),
		distMemo:   make(map[[deck.NumClasses]int]Distribution),
		playerMemo: make(map[stateKey]playerEV),
	}
}

func (e *evaluator) draw(class int) {
	e.counts[class]--
	e.remaining--
}

func (e *evaluator) undraw(class int) {
	e.counts[class]++
	e.remaining++
}

func (e *evaluator) key(total int, soft bool) stateKey {
	k := stateKey{total: int8(total), soft: soft}
	for i, n := range e.counts {
		k.counts[i] = uint16(n)
	}
	return k
}

// EvaluateActions computes the exact EV of every legal action for the
// player hand against the dealer up-card and the composition snapshot.
// The snapshot must already exclude every dealt card (the player's hand
// and the up-card included); the caller re-invokes after any further
// observed removal.
func EvaluateActions(cards []deck.Rank, up deck.Rank, comp deck.Composition, rules Rules) (Result, error) {
	if err := rules.Validate(); err != nil {
		return Result{}, err
	}
	if len(cards) < 2 {
		return Result{}, fmt.Errorf("evaluate actions: %w", ErrShortHand)
	}
	if comp.Remaining() == 0 {
		return Result{}, fmt.Errorf("evaluate actions: %w", ErrEmptyShoe)
	}

	st := hand.Evaluate(cards)
	if st.Bust {
		// No decision left; the hand has already lost its bet.
		return Result{EVs: map[Action]float64{Stand: -1}, Recommended: Stand}, nil
	}

	e := newEvaluator(up, comp, rules)
	evs := make(map[Action]float64, 5)

	evs[Stand] = e.standEV(st.Total, st.Blackjack)
	pe := e.play(st.Total, st.Soft)
	evs[Hit] = pe.hit

	if st.Cards == 2 {
		evs[Double] = e.doubleEV(st.Total, st.Soft)
		if st.Pair {
			evs[Split] = e.splitEV(cards[0].Class(), rules.MaxSplitHands-2)
		}
		if rules.SurrenderAllowed {
			evs[Surrender] = -0.5
		}
	}

	return Result{EVs: evs, Recommended: bestAction(evs)}, nil
}

// bestAction picks the maximum-EV action, breaking exact ties in
// ActionOrder (least committing first).
func bestAction(evs map[Action]float64) Action {
	best := Stand
	bestEV := math.Inf(-1)
	for _, a := range ActionOrder {
		ev, ok := evs[a]
		if !ok {
			continue
		}
		if ev > bestEV {
			best = a
			bestEV = ev
		}
	}
	return best
}

// standEV settles the player total against the dealer distribution for
// the current composition. A natural pays the configured premium and
// pushes only against a dealer natural; a dealer natural beats any
// drawn 21.
func (e *evaluator) standEV(total int, natural bool) float64 {
	d := e.dealerDist()
	if natural {
		return e.rules.BlackjackPayout * (1 - d.PBlackjack)
	}
	ev := d.PBust - d.PBlackjack
	for dt := 17; dt <= 21; dt++ {
		p := d.pTotal(dt)
		switch {
		case total > dt:
			ev += p
		case total < dt:
			ev -= p
		}
	}
	return ev
}

// play returns the stand EV and the optimal hit EV of a player state.
// Hitting draws each possible class, loses the bet on a bust, and
// otherwise continues with the better of standing and hitting again;
// every draw reweights against the shrunk composition.
func (e *evaluator) play(total int, soft bool) playerEV {
	key := e.key(total, soft)
	if v, ok := e.playerMemo[key]; ok {
		return v
	}
	res := playerEV{stand: e.standEV(total, false)}
	if e.remaining == 0 {
		// Nothing left to draw; hitting degenerates to standing.
		res.hit = res.stand
		e.playerMemo[key] = res
		return res
	}
	hit := 0.0
	rem := float64(e.remaining)
	for cls, n := range e.counts {
		if n == 0 {
			continue
		}
		w := float64(n) / rem
		t, s := addCard(total, soft, cls)
		if t > 21 {
			hit -= w
			continue
		}
		e.draw(cls)
		sub := e.play(t, s)
		e.undraw(cls)
		hit += w * math.Max(sub.stand, sub.hit)
	}
	res.hit = hit
	e.playerMemo[key] = res
	return res
}

// doubleEV doubles the bet for exactly one forced card: -2 on a bust,
// twice the resulting stand EV otherwise.
func (e *evaluator) doubleEV(total int, soft bool) float64 {
	ev := 0.0
	rem := float64(e.remaining)
	for cls, n := range e.counts {
		if n == 0 {
			continue
		}
		w := float64(n) / rem
		t, _ := addCard(total, soft, cls)
		if t > 21 {
			ev -= 2 * w
			continue
		}
		e.draw(cls)
		ev += 2 * w * e.standEV(t, false)
		e.undraw(cls)
	}
	return ev
}

// splitEV values splitting a pair of the given class. The two forced
// replacement cards are drawn sequentially: the second hand's weights
// come from the composition with the first hand's card already gone.
// budget is how many further hands resplitting may still create.
func (e *evaluator) splitEV(splitClass, budget int) float64 {
	if e.remaining < 2 {
		return math.Inf(-1)
	}
	ev := 0.0
	rem1 := float64(e.remaining)
	for c1 := 0; c1 < deck.NumClasses; c1++ {
		n1 := e.counts[c1]
		if n1 == 0 {
			continue
		}
		w1 := float64(n1) / rem1
		e.draw(c1)
		rem2 := float64(e.remaining)
		for c2 := 0; c2 < deck.NumClasses; c2++ {
			n2 := e.counts[c2]
			if n2 == 0 {
				continue
			}
			w2 := float64(n2) / rem2
			e.draw(c2)
			w := w1 * w2
			ev += w * (e.splitHandEV(splitClass, c1, budget) + e.splitHandEV(splitClass, c2, budget))
			e.undraw(c2)
		}
		e.undraw(c1)
	}
	return ev
}

// splitHandEV plays out one post-split hand of (split card, drawn card)
// optimally: hit or stand always, double when the rules allow it after a
// split, and a further split when the drawn card re-pairs the hand and
// the hand budget is not exhausted. Split hands never count as naturals.
func (e *evaluator) splitHandEV(splitClass, drawnClass, budget int) float64 {
	total, soft := addCard(deck.ClassValue(splitClass), splitClass == deck.AceClass, drawnClass)
	pe := e.play(total, soft)
	best := math.Max(pe.stand, pe.hit)
	if e.rules.DoubleAfterSplit {
		best = math.Max(best, e.doubleEV(total, soft))
	}
	if drawnClass == splitClass && e.rules.ResplitAllowed && budget > 0 {
		best = math.Max(best, e.splitEV(splitClass, budget-1))
	}
	return best
}

// InsuranceEV is the expected value per unit staked on insurance
// against an ace up: the side bet pays 2:1 exactly when the hole card
// is a ten-value.
func InsuranceEV(comp deck.Composition) float64 {
	return 3*comp.ProbTenValue() - 1
}
