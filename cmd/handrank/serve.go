package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/handrank/internal/config"
	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/internal/history"
	"github.com/lox/handrank/internal/server"
	"github.com/lox/handrank/poker"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the HTTP API and deal stream.
type ServeCmd struct {
	Addr      string        `short:"a" help:"Address to bind to (overrides config)"`
	Port      int           `short:"p" help:"Port to listen on (overrides config)"`
	Players   int           `help:"Default players per deal (overrides config)"`
	Seed      int64         `help:"Shuffle seed, 0 seeds from the clock (overrides config)"`
	Interval  time.Duration `help:"Deal stream interval (overrides config)"`
	NoHistory bool          `help:"Do not record deals"`
}

func (c *ServeCmd) apply(cfg *config.Config) {
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Players != 0 {
		cfg.Dealer.Players = c.Players
	}
	if c.Seed != 0 {
		cfg.Dealer.Seed = c.Seed
	}
	if c.Interval != 0 {
		cfg.Stream.Interval = c.Interval
	}
	if c.NoHistory {
		cfg.History.Enabled = false
	}
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(c.apply)
	if err != nil {
		return err
	}

	logger := g.logger(cfg)
	eval := newEvaluator(logger)
	clock := quartz.NewReal()

	seed := resolveSeed(cfg.Dealer.Seed)
	logger.Info("Using seed", "seed", seed)
	d := dealer.New(eval, poker.NewRandomShuffler(poker.NewRand(seed)),
		dealer.WithClock(clock),
		dealer.WithLogger(logger))

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("Recording deals", "path", cfg.History.Path)
	}

	srv := server.New(server.Options{
		Addr:           cfg.Address(),
		Players:        cfg.Dealer.Players,
		StreamInterval: cfg.Stream.Interval,
	}, d, eval, store, logger, clock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(srv.Start)
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
