package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/handrank/internal/config"
	"github.com/lox/handrank/poker"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"handrank.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	NoColor  bool   `help:"Disable coloured output"`

	Out io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Serve deals over HTTP and websocket"`
	Deal     DealCmd          `cmd:"" help:"Deal one hand and score every player"`
	Eval     EvalCmd          `cmd:"" help:"Rank the best five-card hand in 5 to 7 cards"`
	Simulate SimulateCmd      `cmd:"" help:"Deal many hands in parallel and report category frequencies"`
	Table    TableCmd         `cmd:"" help:"Build the lookup tables and show category boundaries"`
}

func main() {
	cli := CLI{Globals: Globals{Out: os.Stdout}}
	ctx := kong.Parse(&cli,
		kong.Name("handrank"),
		kong.Description("Five-card poker hand ranking with precomputed lookup tables"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the config file, applies command line overrides and
// validates the result.
func (g *Globals) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (g *Globals) logger(cfg *config.Config) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(cfg.Level())
	return logger
}

// newEvaluator builds the lookup table once for the whole process.
func newEvaluator(logger *log.Logger) *poker.Evaluator {
	start := time.Now()
	table := poker.NewLookupTable()
	logger.Debug("Built lookup table",
		"flush", table.FlushLen(),
		"unsuited", table.UnsuitedLen(),
		"took", time.Since(start))
	return poker.NewEvaluator(table)
}

// resolveSeed returns seed, or a clock-derived seed when it is zero.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
