package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
	"github.com/lox/casino/internal/game"
)

// TAGBot is a Tight Aggressive bot that plays premium hands aggressively
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: orDiscard(logger)}
}

// Decide implements game.Agent
func (t *TAGBot) Decide(view game.DecisionView) game.Decision {
	if t.premium(view) {
		t.logger.Debug("premium hand", "seat", view.Seat.Name, "street", view.Table.Street, "category", view.Category)
		if a, ok := aggressive(view.Valid); ok {
			return game.Decision{Kind: a.Kind, Amount: a.MinAmount + (a.MaxAmount-a.MinAmount)/4, Reasoning: "TAG value bet"}
		}
		return choose(view.Valid, "TAG premium, no raise available", game.Call, game.Check)
	}

	// Default tight behavior - check/call, rarely raise
	if view.CanTake(game.Check) {
		return game.Decision{Kind: game.Check, Reasoning: "TAG check"}
	}
	if view.Category >= evaluator.Pair && t.rng.Float64() < 0.3 {
		return game.Decision{Kind: game.Call, Reasoning: "TAG call"}
	}
	t.logger.Debug("TAG folding", "seat", view.Seat.Name, "to_call", view.ToCall, "category", view.Category)
	return game.Decision{Kind: game.Fold, Reasoning: "TAG fold"}
}

// premium is TT+ or AQ+ preflop, and two pair or better after the flop.
func (t *TAGBot) premium(view game.DecisionView) bool {
	if view.Table.Street != game.Preflop {
		return view.Category >= evaluator.TwoPair
	}
	hole := view.Seat.HoleCards
	if len(hole) != 2 {
		return false
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	return (hi == lo && hi >= deck.Ten) || (hi == deck.Ace && lo >= deck.Queen)
}
