package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: orDiscard(logger)}
}

// Decide implements game.Agent
func (m *ManiacBot) Decide(view game.DecisionView) game.Decision {
	_, canShove := find(game.AllIn, view.Valid)
	raise, canRaise := aggressive(view.Valid)

	if view.ToCall == 0 {
		// 85% of the time a maniac puts chips in
		if m.rng.Float64() < 0.85 {
			shortStack := view.Seat.Chips <= 10*view.Table.Increment
			if (shortStack || m.rng.Float64() < 0.3) && canShove {
				return game.Decision{Kind: game.AllIn, Reasoning: "maniac shove"}
			}
			if canRaise {
				size := raise.MinAmount + (raise.MaxAmount-raise.MinAmount)/4
				return game.Decision{Kind: raise.Kind, Amount: size, Reasoning: "maniac big bet"}
			}
		}
		return choose(view.Valid, "maniac checking", game.Check)
	}

	// Facing a bet: 40% shove, 40% call, 20% fold
	roll := m.rng.Float64()
	if roll < 0.4 {
		if canShove {
			return game.Decision{Kind: game.AllIn, Reasoning: "maniac shove over bet"}
		}
		if canRaise {
			return game.Decision{Kind: raise.Kind, Amount: raise.MaxAmount, Reasoning: "maniac max raise over bet"}
		}
	}
	if roll < 0.8 && view.CanTake(game.Call) {
		return game.Decision{Kind: game.Call, Reasoning: "maniac call"}
	}
	m.logger.Debug("maniac giving up", "seat", view.Seat.Name, "to_call", view.ToCall)
	return game.Decision{Kind: game.Fold, Reasoning: "maniac fold"}
}
