package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lox/handrank/internal/config"
	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/poker"
)

// DealCmd deals a single hand and prints every player's result.
type DealCmd struct {
	Players int   `short:"n" help:"Number of players (overrides config)"`
	Seed    int64 `help:"Shuffle seed, 0 seeds from the clock (overrides config)"`
	Ordered bool  `help:"Deal from the unshuffled deck"`
	JSON    bool  `help:"Print the deal as JSON"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(func(cfg *config.Config) {
		if c.Players != 0 {
			cfg.Dealer.Players = c.Players
		}
		if c.Seed != 0 {
			cfg.Dealer.Seed = c.Seed
		}
	})
	if err != nil {
		return err
	}

	logger := g.logger(cfg)
	var shuffler poker.Shuffler = poker.OrderedShuffler{}
	if !c.Ordered {
		shuffler = poker.NewRandomShuffler(poker.NewRand(resolveSeed(cfg.Dealer.Seed)))
	}

	deal, err := dealer.New(newEvaluator(logger), shuffler, dealer.WithLogger(logger)).Deal(cfg.Dealer.Players)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(deal)
	}
	printDeal(g, deal)
	return nil
}

func printDeal(g *Globals, deal *dealer.Deal) {
	fmt.Fprintln(g.Out, headerStyle.Render("Deal "+deal.ID))
	fmt.Fprintln(g.Out, labelStyle.Render("Board"), renderCards(deal.Board.Cards()))
	fmt.Fprintln(g.Out)

	for i, hand := range deal.Hands {
		line := fmt.Sprintf("%s  %-16s rank %4d  score %.4f  best %s",
			renderCards(hand.Cards), hand.Description, hand.Rank, hand.Score, renderCards(hand.Best))
		label := labelStyle.Render(fmt.Sprintf("Player %d", i+1))
		if slices.Contains(deal.Winners, i) {
			line = winnerStyle.Render(line + "  winner")
		}
		fmt.Fprintln(g.Out, label, line)
	}
}
