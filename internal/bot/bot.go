// Package bot provides scripted opponents and autopilot players that
// satisfy game.Agent.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/game"
)

// Kind names a bot strategy
type Kind string

const (
	KindHeuristic Kind = "heuristic"
	KindCall      Kind = "call"
	KindFold      Kind = "fold"
	KindRandom    Kind = "random"
	KindManiac    Kind = "maniac"
	KindTAG       Kind = "tag"
)

// Kinds lists every strategy New accepts
var Kinds = []Kind{KindHeuristic, KindCall, KindFold, KindRandom, KindManiac, KindTAG}

// New creates a bot by name. Heuristic bots play the given difficulty;
// the other strategies ignore it.
func New(kind Kind, difficulty game.Difficulty, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	logger = orDiscard(logger).WithPrefix(string(kind) + "-bot")
	switch Kind(strings.ToLower(string(kind))) {
	case KindHeuristic, "":
		return game.NewHeuristicAgent(game.ProfileFor(difficulty), rng), nil
	case KindCall:
		return NewCallBot(logger), nil
	case KindFold:
		return NewFoldBot(logger), nil
	case KindRandom:
		return NewRandBot(rng, logger), nil
	case KindManiac:
		return NewManiacBot(rng, logger), nil
	case KindTAG:
		return NewTAGBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot %q, expected one of %v", kind, Kinds)
}

// orDiscard returns logger, or a logger that drops everything when it is nil.
func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return logger
}

// find returns the valid action of the given kind.
func find(kind game.ActionKind, valid []game.ValidAction) (game.ValidAction, bool) {
	i := slices.IndexFunc(valid, func(a game.ValidAction) bool { return a.Kind == kind })
	if i < 0 {
		return game.ValidAction{}, false
	}
	return valid[i], true
}

// choose returns a decision for the first available preference, falling
// back to the first valid action.
func choose(valid []game.ValidAction, reasoning string, prefs ...game.ActionKind) game.Decision {
	for _, kind := range prefs {
		if a, ok := find(kind, valid); ok {
			return game.Decision{Kind: kind, Amount: a.MinAmount, Reasoning: reasoning}
		}
	}
	if len(valid) > 0 {
		return game.Decision{Kind: valid[0].Kind, Amount: valid[0].MinAmount, Reasoning: "fallback: " + reasoning}
	}
	// Should never happen with correct ValidActions
	return game.Decision{Kind: game.Fold, Reasoning: "emergency fold"}
}

// aggressive returns the bet or raise available to the seat.
func aggressive(valid []game.ValidAction) (game.ValidAction, bool) {
	if a, ok := find(game.Bet, valid); ok {
		return a, true
	}
	return find(game.Raise, valid)
}
