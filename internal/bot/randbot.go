package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: orDiscard(logger)}
}

// Decide implements game.Agent
func (r *RandBot) Decide(view game.DecisionView) game.Decision {
	if len(view.Valid) == 0 {
		return game.Decision{Kind: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	action := view.Valid[r.rng.IntN(len(view.Valid))]

	// For bets and raises, pick a random target between min and max
	amount := action.MinAmount
	if (action.Kind == game.Bet || action.Kind == game.Raise) && action.MaxAmount > action.MinAmount {
		amount = action.MinAmount + r.rng.IntN(action.MaxAmount-action.MinAmount+1)
	}
	r.logger.Debug("random action", "seat", view.Seat.Name, "action", action.Kind, "amount", amount)
	return game.Decision{Kind: action.Kind, Amount: amount, Reasoning: "rand-bot random action"}
}
