// Package config loads the handrank HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/handrank/internal/dealer"
)

// Config is the resolved configuration with every default applied.
type Config struct {
	Server  ServerSettings
	Dealer  DealerSettings
	Stream  StreamSettings
	History HistorySettings
}

// ServerSettings controls the HTTP listener and logging.
type ServerSettings struct {
	Address  string
	Port     int
	LogLevel string
}

// DealerSettings controls the table size and shuffle seed. A zero seed means
// seed from the clock.
type DealerSettings struct {
	Players int
	Seed    int64
}

// StreamSettings controls the websocket deal stream.
type StreamSettings struct {
	Interval time.Duration
}

// HistorySettings controls the SQLite deal history.
type HistorySettings struct {
	Path    string
	Enabled bool
}

// file mirrors the HCL layout. Every block and attribute is optional.
type file struct {
	Server  *serverBlock  `hcl:"server,block"`
	Dealer  *dealerBlock  `hcl:"dealer,block"`
	Stream  *streamBlock  `hcl:"stream,block"`
	History *historyBlock `hcl:"history,block"`
}

type serverBlock struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

type dealerBlock struct {
	Players int   `hcl:"players,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

type streamBlock struct {
	Interval string `hcl:"interval,optional"`
}

type historyBlock struct {
	Path    string `hcl:"path,optional"`
	Enabled *bool  `hcl:"enabled,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Dealer: DealerSettings{
			Players: 6,
		},
		Stream: StreamSettings{
			Interval: 2 * time.Second,
		},
		History: HistorySettings{
			Path:    "handrank.db",
			Enabled: true,
		},
	}
}

// Load reads filename. A missing file yields Default().
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, filling unset values from Default().
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if s := raw.Server; s != nil {
		if s.Address != "" {
			cfg.Server.Address = s.Address
		}
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
		if s.LogLevel != "" {
			cfg.Server.LogLevel = s.LogLevel
		}
	}
	if d := raw.Dealer; d != nil {
		if d.Players != 0 {
			cfg.Dealer.Players = d.Players
		}
		cfg.Dealer.Seed = d.Seed
	}
	if s := raw.Stream; s != nil && s.Interval != "" {
		interval, err := time.ParseDuration(s.Interval)
		if err != nil {
			return nil, fmt.Errorf("stream interval: %w", err)
		}
		cfg.Stream.Interval = interval
	}
	if h := raw.History; h != nil {
		if h.Path != "" {
			cfg.History.Path = h.Path
		}
		if h.Enabled != nil {
			cfg.History.Enabled = *h.Enabled
		}
	}

	return cfg, nil
}

// Validate checks ranges that the decoder cannot.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if c.Dealer.Players < 1 || c.Dealer.Players > dealer.MaxPlayers {
		return fmt.Errorf("dealer: %w: players must be between 1 and %d, got %d", dealer.ErrPlayerCount, dealer.MaxPlayers, c.Dealer.Players)
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream: interval must be positive, got %s", c.Stream.Interval)
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history: path is required when enabled")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
