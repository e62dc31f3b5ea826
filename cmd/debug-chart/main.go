// debug-chart prints the strategy chart for a fresh shoe to the
// terminal. Handy for eyeballing rule effects without the server.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/pterm/pterm"

	"github.com/MJE43/blackjack-edge-go/internal/charts"
	"github.com/MJE43/blackjack-edge-go/internal/deck"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
)

// actionLetter is the conventional chart shorthand.
var actionLetter = map[engine.Action]string{
	engine.Stand:     "S",
	engine.Hit:       "H",
	engine.Double:    "D",
	engine.Split:     "P",
	engine.Surrender: "R",
}

// upOrder lists up-card classes in chart convention: 2 through 10,
// ace last.
func upOrder() []int {
	order := make([]int, 0, deck.NumClasses)
	for c := 1; c <= deck.TenClass; c++ {
		order = append(order, c)
	}
	return append(order, deck.AceClass)
}

func main() {
	decks := flag.Int("decks", 6, "shoe size in decks")
	h17 := flag.Bool("h17", false, "dealer hits soft 17")
	das := flag.Bool("das", true, "double after split allowed")
	resplit := flag.Bool("resplit", true, "resplitting allowed")
	flag.Parse()

	rules := engine.DefaultRules()
	rules.DealerHitsSoft17 = *h17
	rules.DoubleAfterSplit = *das
	rules.ResplitAllowed = *resplit

	comp, err := deck.New(*decks)
	if err != nil {
		log.Fatal(err)
	}

	spinner, _ := pterm.DefaultSpinner.Start("generating chart")
	chart, err := charts.Generate(context.Background(), comp, rules)
	if err != nil {
		spinner.Fail(err.Error())
		log.Fatal(err)
	}
	spinner.Success(pterm.Sprintf("%d cells for a fresh %d-deck shoe", len(chart.Cells), *decks))

	dealer := "S17"
	if *h17 {
		dealer = "H17"
	}
	pterm.DefaultSection.Printfln("Strategy chart: %d decks, %s, DAS=%v, resplit=%v", *decks, dealer, *das, *resplit)

	header := []string{"hand"}
	for _, up := range upOrder() {
		header = append(header, charts.UpLabel(up))
	}
	data := pterm.TableData{header}
	for c1 := 0; c1 < deck.NumClasses; c1++ {
		for c2 := c1; c2 < deck.NumClasses; c2++ {
			label := charts.HandLabel(c1, c2)
			row := []string{label}
			for _, up := range upOrder() {
				cell, ok := chart.Cell(label, charts.UpLabel(up))
				if !ok {
					row = append(row, "-")
					continue
				}
				letter := actionLetter[cell.Action]
				if cell.Deviation {
					letter = pterm.LightYellow(letter + "*")
				}
				row = append(row, letter)
			}
			data = append(data, row)
		}
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		log.Fatal(err)
	}
	pterm.Info.Println("S stand, H hit, D double, P split, R surrender; * deviates from basic strategy")
}
