package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/randutil"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2099, 3, 14, 20, 0, 0, 0, time.UTC)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// newTestSession creates a seeded session with a mock clock and silent logger.
func newTestSession(t *testing.T, opponents, chips int, opts ...SessionOption) *Session {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(testEpoch)

	base := []SessionOption{WithLogger(testLogger()), WithClock(clock)}
	s, err := NewSession(randutil.New(42), opponents, chips, append(base, opts...)...)
	require.NoError(t, err)
	return s
}

// stackedDeck deals hole cards in seat order, then flop, turn and river.
func stackedDeck(t *testing.T, cards string) *deck.Deck {
	t.Helper()
	parsed, err := deck.ParseCards(cards)
	require.NoError(t, err)
	return deck.NewStacked(parsed...)
}

// passiveAgent checks when it can and calls otherwise.
var passiveAgent = AgentFunc(func(v DecisionView) Decision {
	if v.CanTake(Check) {
		return Decision{Kind: Check, Reasoning: "passive"}
	}
	return Decision{Kind: Call, Reasoning: "passive"}
})

// scriptedAgent plays the given actions in order, then plays passively.
func scriptedAgent(kinds ...ActionKind) Agent {
	return AgentFunc(func(v DecisionView) Decision {
		if len(kinds) == 0 {
			return passiveAgent(v)
		}
		kind := kinds[0]
		kinds = kinds[1:]
		return Decision{Kind: kind, Reasoning: "scripted"}
	})
}

// playToCompletion drives a dealt hand, letting human choose each human action.
func playToCompletion(t *testing.T, s *Session, human func(DecisionView) (ActionKind, int)) Status {
	t.Helper()
	for range 100 {
		status, err := s.Advance()
		require.NoError(t, err)
		if status != StatusAwaitingHuman {
			return status
		}
		seat := s.seats[HumanSeat]
		kind, amount := human(s.decisionView(seat))
		require.NoError(t, s.SubmitAction(HumanSeat, kind, amount))
	}
	t.Fatal("hand did not complete")
	return StatusIdle
}

// eventRecorder collects published events.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}
