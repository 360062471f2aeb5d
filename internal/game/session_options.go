package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/casino/internal/deck"
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionConfig)

// sessionConfig holds all configuration for creating a session.
type sessionConfig struct {
	logger         *log.Logger
	clock          quartz.Clock
	bus            EventBus
	deck           *deck.Deck // overrides the RNG-backed deck if set
	increment      int
	opponentChips  int // 0 means same as the player
	playerName     string
	opponentNames  []string
	profiles       map[SeatID]AIProfile
	defaultProfile AIProfile
	agents         map[SeatID]Agent
	humanAgent     Agent
}

// WithLogger sets the session logger. Sessions log nothing by default,
// and a nil logger keeps that default.
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for event timestamps and hand IDs
func WithClock(clock quartz.Clock) SessionOption {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithEventBus publishes session events to bus
func WithEventBus(bus EventBus) SessionOption {
	return func(c *sessionConfig) {
		c.bus = bus
	}
}

// WithDeck deals from d instead of a deck shuffled by the session RNG.
// Tests use a stacked deck for fixed outcomes.
func WithDeck(d *deck.Deck) SessionOption {
	return func(c *sessionConfig) {
		c.deck = d
	}
}

// WithBetIncrement sets the minimum bet and raise size
func WithBetIncrement(increment int) SessionOption {
	return func(c *sessionConfig) {
		c.increment = increment
	}
}

// WithOpponentChips sets the starting stack of every scripted seat
func WithOpponentChips(chips int) SessionOption {
	return func(c *sessionConfig) {
		c.opponentChips = chips
	}
}

// WithPlayerName sets the human seat's display name
func WithPlayerName(name string) SessionOption {
	return func(c *sessionConfig) {
		c.playerName = name
	}
}

// WithOpponentNames sets scripted seat names in seat order
func WithOpponentNames(names ...string) SessionOption {
	return func(c *sessionConfig) {
		c.opponentNames = names
	}
}

// WithDifficulty sets the profile of every heuristic seat without an
// explicit WithProfile.
func WithDifficulty(d Difficulty) SessionOption {
	return func(c *sessionConfig) {
		c.defaultProfile = ProfileFor(d)
	}
}

// WithProfile sets the AI profile of one scripted seat
func WithProfile(id SeatID, profile AIProfile) SessionOption {
	return func(c *sessionConfig) {
		c.profiles[id] = profile
	}
}

// WithAgent replaces the heuristic agent of a scripted seat
func WithAgent(id SeatID, agent Agent) SessionOption {
	return func(c *sessionConfig) {
		c.agents[id] = agent
	}
}

// WithAutopilot lets agent play the human seat, so Advance never stops
// for input. Used by simulations.
func WithAutopilot(agent Agent) SessionOption {
	return func(c *sessionConfig) {
		c.humanAgent = agent
	}
}

func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		logger:         log.NewWithOptions(io.Discard, log.Options{}),
		clock:          quartz.NewReal(),
		increment:      DefaultBetIncrement,
		playerName:     "You",
		profiles:       make(map[SeatID]AIProfile),
		defaultProfile: ProfileFor(Normal),
		agents:         make(map[SeatID]Agent),
	}
}

func (c *sessionConfig) opponentName(id SeatID) string {
	if i := int(id) - 1; i < len(c.opponentNames) && c.opponentNames[i] != "" {
		return c.opponentNames[i]
	}
	return fmt.Sprintf("AI-%d", id)
}
