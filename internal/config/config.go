// Package config loads casino table settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/casino/internal/bot"
	"github.com/lox/casino/internal/game"
)

// DefaultFile is the config file the CLI reads when none is given
const DefaultFile = "casino.hcl"

// Config represents the complete casino configuration
type Config struct {
	Table       *TableSettings    `hcl:"table,block"`
	Opponents   []OpponentConfig  `hcl:"opponent,block"`
	Log         *LogSettings      `hcl:"log,block"`
	HandHistory *HandHistoryBlock `hcl:"hand_history,block"`
}

// TableSettings describes the session the human joins
type TableSettings struct {
	Opponents     int    `hcl:"opponents,optional"`
	PlayerName    string `hcl:"player_name,optional"`
	PlayerChips   int    `hcl:"player_chips,optional"`
	OpponentChips int    `hcl:"opponent_chips,optional"`
	BetIncrement  int    `hcl:"bet_increment,optional"`
	Seed          uint64 `hcl:"seed,optional"` // 0 picks a random seed
	Difficulty    string `hcl:"difficulty,optional"`
}

// OpponentConfig customizes one scripted seat, in seat order
type OpponentConfig struct {
	Name       string `hcl:"name,label"`
	Difficulty string `hcl:"difficulty,optional"`
	Bot        string `hcl:"bot,optional"`
}

// LogSettings controls CLI logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// HandHistoryBlock enables PHH recording into Dir
type HandHistoryBlock struct {
	Dir string `hcl:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for anything unset.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	t := c.Table
	if t.Opponents == 0 {
		t.Opponents = max(len(c.Opponents), 3)
	}
	if t.PlayerName == "" {
		t.PlayerName = "You"
	}
	if t.PlayerChips == 0 {
		t.PlayerChips = 1000
	}
	if t.OpponentChips == 0 {
		t.OpponentChips = t.PlayerChips
	}
	if t.BetIncrement == 0 {
		t.BetIncrement = game.DefaultBetIncrement
	}
	if t.Difficulty == "" {
		t.Difficulty = string(game.Normal)
	}

	for i := range c.Opponents {
		if c.Opponents[i].Difficulty == "" {
			c.Opponents[i].Difficulty = t.Difficulty
		}
		if c.Opponents[i].Bot == "" {
			c.Opponents[i].Bot = string(bot.KindHeuristic)
		}
	}

	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Table
	if t.Opponents < game.MinOpponents || t.Opponents > game.MaxOpponents {
		return fmt.Errorf("table: opponents must be between %d and %d, got %d",
			game.MinOpponents, game.MaxOpponents, t.Opponents)
	}
	if len(c.Opponents) > t.Opponents {
		return fmt.Errorf("table: %d opponent blocks configured for %d opponents", len(c.Opponents), t.Opponents)
	}
	if t.PlayerChips <= 0 || t.OpponentChips <= 0 {
		return fmt.Errorf("table: starting chips must be positive")
	}
	if t.BetIncrement <= 0 {
		return fmt.Errorf("table: bet increment must be positive")
	}
	if _, err := game.ParseDifficulty(t.Difficulty); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	seen := make(map[string]bool)
	for _, o := range c.Opponents {
		if seen[o.Name] {
			return fmt.Errorf("opponent %s: duplicate name", o.Name)
		}
		seen[o.Name] = true
		if _, err := game.ParseDifficulty(o.Difficulty); err != nil {
			return fmt.Errorf("opponent %s: %w", o.Name, err)
		}
		if !slices.Contains(bot.Kinds, bot.Kind(strings.ToLower(o.Bot))) {
			return fmt.Errorf("opponent %s: invalid bot %s", o.Name, o.Bot)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.HandHistory != nil && c.HandHistory.Dir == "" {
		return fmt.Errorf("hand_history: dir is required")
	}
	return nil
}

// LogLevel returns the configured level, defaulting to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// SessionOptions translates the table and opponent settings into
// session options. Scripted seats draw from rng.
func (c *Config) SessionOptions(rng *rand.Rand, logger *log.Logger) ([]game.SessionOption, error) {
	difficulty, err := game.ParseDifficulty(c.Table.Difficulty)
	if err != nil {
		return nil, err
	}

	opts := []game.SessionOption{
		game.WithLogger(logger),
		game.WithPlayerName(c.Table.PlayerName),
		game.WithOpponentChips(c.Table.OpponentChips),
		game.WithBetIncrement(c.Table.BetIncrement),
		game.WithDifficulty(difficulty),
	}

	names := make([]string, len(c.Opponents))
	for i, o := range c.Opponents {
		names[i] = o.Name
		d, err := game.ParseDifficulty(o.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("opponent %s: %w", o.Name, err)
		}
		agent, err := bot.New(bot.Kind(strings.ToLower(o.Bot)), d, rng, logger)
		if err != nil {
			return nil, fmt.Errorf("opponent %s: %w", o.Name, err)
		}
		opts = append(opts, game.WithAgent(game.SeatID(i+1), agent))
	}
	if len(names) > 0 {
		opts = append(opts, game.WithOpponentNames(names...))
	}
	return opts, nil
}
