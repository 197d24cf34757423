package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/handrank/internal/config"
	"github.com/lox/handrank/internal/simulator"
)

// SimulateCmd deals many hands and reports how often each category appears.
type SimulateCmd struct {
	Hands   int   `short:"n" default:"100000" help:"Number of hands to deal"`
	Players int   `short:"p" help:"Players per hand (overrides config)"`
	Workers int   `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Seed    int64 `help:"Seed, 0 seeds from the clock (overrides config)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
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
	seed := resolveSeed(cfg.Dealer.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := simulator.Run(ctx, newEvaluator(logger), simulator.Config{
		Hands:   c.Hands,
		Players: cfg.Dealer.Players,
		Workers: c.Workers,
		Seed:    seed,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(g.Out, headerStyle.Render(fmt.Sprintf("Simulation (seed %d)", seed)))
	simulator.PrintSummary(g.Out, result)
	return nil
}
