package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 3, cfg.Table.Opponents)
	assert.Equal(t, "You", cfg.Table.PlayerName)
	assert.Equal(t, 1000, cfg.Table.PlayerChips)
	assert.Equal(t, 1000, cfg.Table.OpponentChips)
	assert.Equal(t, game.DefaultBetIncrement, cfg.Table.BetIncrement)
	assert.Equal(t, "normal", cfg.Table.Difficulty)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Nil(t, cfg.HandHistory)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	src := `
table {
  opponents      = 2
  player_name    = "Han"
  player_chips   = 500
  opponent_chips = 800
  bet_increment  = 25
  seed           = 99
  difficulty     = "hard"
}

opponent "Lando" {
  bot = "tag"
}

opponent "Greedo" {
  difficulty = "easy"
}

log {
  level = "debug"
  file  = "casino.log"
}

hand_history {
  dir = "hands"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Table.Opponents)
	assert.Equal(t, "Han", cfg.Table.PlayerName)
	assert.Equal(t, 500, cfg.Table.PlayerChips)
	assert.Equal(t, 800, cfg.Table.OpponentChips)
	assert.Equal(t, 25, cfg.Table.BetIncrement)
	assert.Equal(t, uint64(99), cfg.Table.Seed)

	require.Len(t, cfg.Opponents, 2)
	assert.Equal(t, OpponentConfig{Name: "Lando", Difficulty: "hard", Bot: "tag"}, cfg.Opponents[0])
	assert.Equal(t, OpponentConfig{Name: "Greedo", Difficulty: "easy", Bot: "heuristic"}, cfg.Opponents[1])

	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "casino.log", cfg.Log.File)
	require.NotNil(t, cfg.HandHistory)
	assert.Equal(t, "hands", cfg.HandHistory.Dir)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")

	_, err = Parse([]byte(`table { seats = 4 }`), "unknown.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"too many opponents", `table { opponents = 4 }`, "opponents must be between"},
		{"negative chips", `table { player_chips = -5 }`, "starting chips"},
		{"bad difficulty", `table { difficulty = "insane" }`, "unknown difficulty"},
		{"bad bot", `opponent "x" { bot = "gto" }`, "invalid bot"},
		{"duplicate names", "opponent \"x\" {}\nopponent \"x\" {}", "duplicate name"},
		{"blocks exceed seats", "table { opponents = 1 }\nopponent \"a\" {}\nopponent \"b\" {}", "2 opponent blocks"},
		{"bad log level", `log { level = "loud" }`, "log:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSessionOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
table {
  opponents    = 2
  player_chips = 300
}
opponent "Caller" { bot = "call" }
`), "test.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	rng := randutil.New(1)
	opts, err := cfg.SessionOptions(rng, log.NewWithOptions(io.Discard, log.Options{}))
	require.NoError(t, err)

	var calls []game.ActionAppliedEvent
	bus := game.NewEventBus()
	bus.Subscribe(game.EventSubscriberFunc(func(e game.Event) {
		if applied, ok := e.(game.ActionAppliedEvent); ok && applied.Seat == 1 {
			calls = append(calls, applied)
		}
	}))
	opts = append(opts, game.WithEventBus(bus))

	s, err := game.NewSession(rng, cfg.Table.Opponents, cfg.Table.PlayerChips, opts...)
	require.NoError(t, err)

	seats := s.Seats()
	require.Len(t, seats, 3)
	assert.Equal(t, "You", seats[0].Name)
	assert.Equal(t, "Caller", seats[1].Name)
	assert.Equal(t, "AI-2", seats[2].Name)
	for _, seat := range seats {
		assert.Equal(t, 300, seat.Chips)
	}

	// The configured call bot matches a shove instead of folding.
	require.NoError(t, s.DealStreet())
	require.NoError(t, s.SubmitAction(game.HumanSeat, game.AllIn, 0))
	_, err = s.Advance()
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, game.Call, calls[0].Kind)
}
