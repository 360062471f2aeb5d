package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/casino/internal/evaluator"
)

// Difficulty selects a preset AIProfile
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name, defaulting to Normal for "".
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Normal, nil
	case Easy, Normal, Hard:
		return d, nil
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

// AIProfile holds the probabilities that shape a heuristic seat's play.
// Larger values mean a more aggressive opponent, except FoldWeak and
// OpenThreshold which make it tighter.
type AIProfile struct {
	Noise         float64 // half-width of the uniform strength perturbation
	FoldWeak      float64 // chance of folding a weak hand to a bet
	MidRaise      float64 // chance of raising a medium hand facing a bet
	StrongRaise   float64 // chance of raising a strong hand facing a bet
	OpenThreshold float64 // minimum strength to open the betting
}

// ProfileFor returns the preset profile for a difficulty
func ProfileFor(d Difficulty) AIProfile {
	switch d {
	case Easy:
		return AIProfile{Noise: 0.2, FoldWeak: 0.6, MidRaise: 0.1, StrongRaise: 0.5, OpenThreshold: 0.6}
	case Hard:
		return AIProfile{Noise: 0.05, FoldWeak: 0.9, MidRaise: 0.4, StrongRaise: 0.9, OpenThreshold: 0.45}
	default:
		return AIProfile{Noise: 0.1, FoldWeak: 0.8, MidRaise: 0.25, StrongRaise: 0.8, OpenThreshold: 0.5}
	}
}

// categoryStrength maps each hand category to a base strength in [0,1].
var categoryStrength = [...]float64{
	evaluator.HighCard:      0.1,
	evaluator.Pair:          0.2,
	evaluator.TwoPair:       0.3,
	evaluator.ThreeOfAKind:  0.4,
	evaluator.Straight:      0.5,
	evaluator.Flush:         0.6,
	evaluator.FullHouse:     0.7,
	evaluator.FourOfAKind:   0.8,
	evaluator.StraightFlush: 0.9,
	evaluator.RoyalFlush:    1.0,
}

// Strength returns the base strength of a category
func Strength(c evaluator.Category) float64 {
	if c < evaluator.HighCard || int(c) >= len(categoryStrength) {
		return 0
	}
	return categoryStrength[c]
}

// HeuristicAgent plays from its hand category alone, perturbed by noise.
type HeuristicAgent struct {
	profile AIProfile
	rng     *rand.Rand
}

// NewHeuristicAgent creates an agent drawing from rng. Sessions pass their
// own source so a seed reproduces every decision.
func NewHeuristicAgent(profile AIProfile, rng *rand.Rand) *HeuristicAgent {
	if rng == nil {
		panic("rng is required for heuristic agent")
	}
	return &HeuristicAgent{profile: profile, rng: rng}
}

// Decide implements Agent
func (a *HeuristicAgent) Decide(view DecisionView) Decision {
	strength := a.perturb(Strength(view.Category))

	if view.ToCall > 0 {
		return a.facingBet(view, strength)
	}
	return a.unopened(view, strength)
}

func (a *HeuristicAgent) perturb(strength float64) float64 {
	if a.profile.Noise > 0 {
		strength += (a.rng.Float64()*2 - 1) * a.profile.Noise
	}
	return min(max(strength, 0), 1)
}

func (a *HeuristicAgent) facingBet(view DecisionView, strength float64) Decision {
	reason := fmt.Sprintf("%s, strength %.2f facing %d", view.Category, strength, view.ToCall)

	switch {
	case strength < 0.2:
		if a.rng.Float64() < a.profile.FoldWeak {
			return Decision{Kind: Fold, Reasoning: "weak " + reason}
		}
		return Decision{Kind: Call, Reasoning: "loose call, " + reason}
	case strength < 0.5:
		return Decision{Kind: Call, Reasoning: reason}
	case strength < 0.8:
		if a.rng.Float64() < a.profile.MidRaise && view.CanTake(Raise) {
			return Decision{Kind: Raise, Reasoning: "semi-aggressive " + reason}
		}
		return Decision{Kind: Call, Reasoning: reason}
	default:
		if a.rng.Float64() < a.profile.StrongRaise && view.CanTake(Raise) {
			return Decision{Kind: Raise, Reasoning: "value " + reason}
		}
		return Decision{Kind: Call, Reasoning: "slowplay " + reason}
	}
}

func (a *HeuristicAgent) unopened(view DecisionView, strength float64) Decision {
	reason := fmt.Sprintf("%s, strength %.2f", view.Category, strength)

	threshold := a.profile.OpenThreshold
	if strength > threshold && threshold < 1 {
		chance := (strength - threshold) / (1 - threshold)
		if a.rng.Float64() < chance {
			// A seat that already matches an open bet can only raise it.
			kind := Bet
			if view.Table.CurrentBet > 0 {
				kind = Raise
			}
			if view.CanTake(kind) {
				return Decision{Kind: kind, Reasoning: "opening " + reason}
			}
		}
	}
	return Decision{Kind: Check, Reasoning: reason}
}
