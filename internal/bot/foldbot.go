package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: orDiscard(logger)}
}

// Decide implements game.Agent
func (f *FoldBot) Decide(view game.DecisionView) game.Decision {
	d := choose(view.Valid, "fold-bot", game.Check, game.Fold)
	f.logger.Debug("fold-bot decision", "seat", view.Seat.Name, "action", d.Kind, "to_call", view.ToCall)
	return d
}
