// Package charts renders full strategy charts for a composition: every
// starting two-card hand against every dealer up-card, with the exact
// composition-dependent recommendation and its deviation from the
// fixed basic-strategy chart.
package charts

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
	"github.com/MJE43/blackjack-edge-go/internal/strategy"
)

// Cell is one chart entry: a starting hand against an up-card.
type Cell struct {
	Hand      string        `json:"hand"`
	Up        string        `json:"up"`
	Action    engine.Action `json:"action"`
	EV        float64       `json:"ev"`
	Deviation bool          `json:"deviation"`
}

// Chart is a complete composition-dependent strategy chart. Cells are
// ordered by up-card class, then by hand.
type Chart struct {
	Decks       int          `json:"decks"`
	Digest      string       `json:"digest"`
	Rules       engine.Rules `json:"rules"`
	GeneratedAt time.Time    `json:"generated_at"`
	Cells       []Cell       `json:"cells"`
}

// Cell looks up the entry for a hand/up-card label pair.
func (c *Chart) Cell(hand, up string) (Cell, bool) {
	for _, cell := range c.Cells {
		if cell.Hand == hand && cell.Up == up {
			return cell, true
		}
	}
	return Cell{}, false
}

// removeClass takes one card of the value class out of the composition,
// preferring the canonical rank but falling back to any rank of the
// class still present. It returns the rank actually removed.
func removeClass(comp *deck.Composition, class int) (deck.Rank, error) {
	r := deck.ClassRank(class)
	if err := comp.Remove(r); err == nil {
		return r, nil
	}
	if class == deck.TenClass {
		for _, alt := range []deck.Rank{deck.Jack, deck.Queen, deck.King} {
			if err := comp.Remove(alt); err == nil {
				return alt, nil
			}
		}
	}
	return 0, fmt.Errorf("remove class %d: %w", class, deck.ErrEmptyRank)
}

// Generate evaluates the 55 distinct two-card starting hands against
// each of the 10 up-card classes over the given composition. Up-cards
// are evaluated in parallel; each worker runs over its own snapshot.
// Cells whose cards are exhausted in the composition are omitted.
func Generate(ctx context.Context, comp deck.Composition, rules engine.Rules) (*Chart, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	columns := make([][]Cell, deck.NumClasses)
	g, ctx := errgroup.WithContext(ctx)
	for up := 0; up < deck.NumClasses; up++ {
		up := up
		g.Go(func() error {
			cells, err := generateColumn(ctx, comp.Snapshot(), rules, up)
			if err != nil {
				return err
			}
			columns[up] = cells
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chart := &Chart{
		Decks:       comp.Decks(),
		Digest:      comp.Digest(),
		Rules:       rules,
		GeneratedAt: time.Now().UTC(),
	}
	for _, col := range columns {
		chart.Cells = append(chart.Cells, col...)
	}
	return chart, nil
}

// generateColumn fills one up-card column: every unordered class pair
// (c1 <= c2) forms a starting hand.
func generateColumn(ctx context.Context, base deck.Composition, rules engine.Rules, up int) ([]Cell, error) {
	var cells []Cell
	for c1 := 0; c1 < deck.NumClasses; c1++ {
		for c2 := c1; c2 < deck.NumClasses; c2++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			snap := base.Snapshot()
			r1, err := removeClass(&snap, c1)
			if err != nil {
				continue
			}
			r2, err := removeClass(&snap, c2)
			if err != nil {
				continue
			}
			upRank, err := removeClass(&snap, up)
			if err != nil {
				continue
			}
			cards := []deck.Rank{r1, r2}
			res, err := engine.EvaluateActions(cards, upRank, snap, rules)
			if err != nil {
				return nil, fmt.Errorf("hand %s,%s v %s: %w", r1, r2, upRank, err)
			}
			cells = append(cells, Cell{
				Hand:      HandLabel(c1, c2),
				Up:        UpLabel(up),
				Action:    res.Recommended,
				EV:        res.EVs[res.Recommended],
				Deviation: strategy.Deviation(res.Recommended, cards, upRank, rules),
			})
		}
	}
	return cells, nil
}

// HandLabel names a starting hand by its class pair, high card first.
func HandLabel(c1, c2 int) string {
	hi, lo := c1, c2
	// Ace is class 0 but the highest card; list it first.
	if hi != deck.AceClass && (lo == deck.AceClass || deck.ClassValue(lo) > deck.ClassValue(hi)) {
		hi, lo = lo, hi
	}
	return deck.ClassRank(hi).String() + "," + deck.ClassRank(lo).String()
}

// UpLabel names an up-card class.
func UpLabel(class int) string {
	return deck.ClassRank(class).String()
}
