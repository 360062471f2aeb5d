package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
)

// CallBot checks or calls every street and never raises. Short-stacked
// it shoves when nobody has bet yet.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: orDiscard(logger)}
}

// Decide implements game.Agent
func (c *CallBot) Decide(view game.DecisionView) game.Decision {
	shortStack := view.Seat.Chips < 2*view.Table.Increment
	if shortStack && view.ToCall == 0 && view.CanTake(game.AllIn) {
		c.logger.Debug("shoving short stack", "seat", view.Seat.Name, "chips", view.Seat.Chips)
		return choose(view.Valid, "shoving with short stack", game.AllIn)
	}
	return choose(view.Valid, "call-bot", game.Check, game.Call, game.Fold)
}
