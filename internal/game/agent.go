package game

import (
	"github.com/lox/casino/internal/evaluator"
)

// Decision represents a seat's chosen action with reasoning
type Decision struct {
	Kind      ActionKind
	Amount    int    // For bets and raises, the street stake total; 0 means one increment
	Reasoning string // Human-readable explanation
}

// DecisionView is the read-only state handed to an Agent.
type DecisionView struct {
	Seat     SeatView // includes the deciding seat's hole cards
	Category evaluator.Category
	Table    TableView
	ToCall   int
	Valid    []ValidAction
}

// CanTake reports whether kind is among the valid actions.
func (v DecisionView) CanTake(kind ActionKind) bool {
	for _, a := range v.Valid {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Agent decides actions for a scripted seat. Agents receive immutable state
// and return a decision; the session validates it like any human action.
type Agent interface {
	Decide(view DecisionView) Decision
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(DecisionView) Decision

func (f AgentFunc) Decide(view DecisionView) Decision { return f(view) }
