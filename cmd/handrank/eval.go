package main

import (
	"fmt"
	"strings"

	"github.com/lox/handrank/poker"
)

// EvalCmd ranks cards given on the command line.
type EvalCmd struct {
	Cards []string `arg:"" help:"Cards such as 'AsKsQsJsTs' or 'As Ks Qs Js Ts 2c 3d'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	cards, err := poker.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}

	eval := newEvaluator(g.logger(cfg))
	rank, best, err := eval.EvaluateBest(cards)
	if err != nil {
		return err
	}
	_, name, err := eval.Describe(best)
	if err != nil {
		return err
	}

	bestText := make([]string, len(best))
	for i, card := range best {
		bestText[i] = card.String()
	}

	fmt.Fprintln(g.Out, labelStyle.Render("Hand"), renderCards(strings.Fields(poker.FormatCards(cards))))
	fmt.Fprintln(g.Out, labelStyle.Render("Best"), renderCards(bestText))
	fmt.Fprintln(g.Out, labelStyle.Render("Category"), winnerStyle.Render(name))
	fmt.Fprintln(g.Out, labelStyle.Render("Rank"), fmt.Sprintf("%d of %d", rank, poker.MaxHighCard))
	fmt.Fprintln(g.Out, labelStyle.Render("Score"), fmt.Sprintf("%.4f", 1-eval.Percentile(rank)))
	return nil
}
