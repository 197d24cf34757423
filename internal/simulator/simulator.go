package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/internal/statistics"
	"github.com/lox/handrank/poker"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Hands   int
	Players int
	Workers int // defaults to runtime.NumCPU()
	Seed    int64
	Logger  *log.Logger
}

// Result aggregates every dealt hand. Category arrays are indexed by
// poker.Category; index 0 is unused.
type Result struct {
	Hands   int
	Players int

	// Categories counts every player's final hand; Winners counts the
	// winning hand of each deal.
	Categories [poker.HighCard + 1]int
	Winners    [poker.HighCard + 1]int
	SplitPots  int

	// WinRank samples the winning rank of each deal.
	WinRank  statistics.Statistics
	Duration time.Duration
}

// Simulator deals many hands in parallel against one shared evaluator.
type Simulator struct {
	eval   *poker.Evaluator
	config Config
}

// New creates a new simulator with the given configuration
func New(eval *poker.Evaluator, config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{eval: eval, config: config}
}

// Run executes the simulation. Hands are split evenly across workers; each
// worker owns a shuffler seeded from Config.Seed, so a given seed and worker
// count always produce the same result.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Hands <= 0 {
		return nil, errors.New("hands must be positive")
	}
	if cfg.Players < 1 || cfg.Players > dealer.MaxPlayers {
		return nil, fmt.Errorf("%w: %d", dealer.ErrPlayerCount, cfg.Players)
	}

	workers := min(cfg.Workers, cfg.Hands)
	perWorker := cfg.Hands / workers
	remainder := cfg.Hands % workers

	seeds := poker.NewRand(cfg.Seed)
	partials := make([]*Result, workers)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		hands := perWorker
		if w < remainder {
			hands++
		}
		workerSeed := seeds.Int64()

		g.Go(func() error {
			d := dealer.New(s.eval, poker.NewRandomShuffler(poker.NewRand(workerSeed)))
			partial, err := s.runWorker(ctx, d, hands)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			partials[w] = partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Players: cfg.Players}
	for _, p := range partials {
		result.Hands += p.Hands
		result.SplitPots += p.SplitPots
		for c := range result.Categories {
			result.Categories[c] += p.Categories[c]
			result.Winners[c] += p.Winners[c]
		}
		result.WinRank.Merge(&p.WinRank)
	}
	result.Duration = time.Since(start)

	cfg.Logger.Info("Simulation complete",
		"hands", result.Hands,
		"players", cfg.Players,
		"workers", workers,
		"duration", result.Duration)

	return result, nil
}

func (s *Simulator) runWorker(ctx context.Context, d *dealer.Dealer, hands int) (*Result, error) {
	r := &Result{Players: s.config.Players}
	for range hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		deal, err := d.Deal(s.config.Players)
		if err != nil {
			return nil, err
		}

		r.Hands++
		for _, hand := range deal.Hands {
			r.Categories[hand.Rank.Category()]++
		}
		best := deal.Hands[deal.Winners[0]].Rank
		r.Winners[best.Category()]++
		r.WinRank.Add(float64(best))
		if len(deal.Winners) > 1 {
			r.SplitPots++
		}
	}
	return r, nil
}

// Run is a convenience wrapper around New(eval, config).Run(ctx).
func Run(ctx context.Context, eval *poker.Evaluator, config Config) (*Result, error) {
	return New(eval, config).Run(ctx)
}

// PrintSummary writes a plain-text report of r.
func PrintSummary(w io.Writer, r *Result) {
	total := r.Hands * r.Players
	fmt.Fprintf(w, "Hands dealt: %d (%d players, %d player hands) in %s\n",
		r.Hands, r.Players, total, r.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "\n%-16s %10s %8s %10s %8s\n", "Category", "Hands", "Share", "Winners", "Share")
	for c := poker.StraightFlush; c <= poker.HighCard; c++ {
		fmt.Fprintf(w, "%-16s %10d %7.3f%% %10d %7.3f%%\n",
			c, r.Categories[c], percent(r.Categories[c], total),
			r.Winners[c], percent(r.Winners[c], r.Hands))
	}

	low, high := r.WinRank.ConfidenceInterval95()
	fmt.Fprintf(w, "\nWinning rank: mean %.1f, median %.0f, 95%% CI [%.1f, %.1f]\n",
		r.WinRank.Mean(), r.WinRank.Median(), low, high)
	fmt.Fprintf(w, "Split pots: %d (%.2f%%)\n", r.SplitPots, percent(r.SplitPots, r.Hands))
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
