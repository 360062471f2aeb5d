package game

import (
	"testing"

	"github.com/lox/casino/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSequenceForFoldedHand(t *testing.T) {
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	s := newTestSession(t, 1, 1000, WithEventBus(bus))
	require.NoError(t, s.DealStreet())
	require.NoError(t, s.SubmitAction(HumanSeat, Bet, 0))
	require.NoError(t, s.SubmitAction(1, Fold, 0))
	_, err := s.Settle()
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventTypeHandStarted,
		EventTypeCardsDealt,
		EventTypeCardsDealt,
		EventTypeActionApplied,
		EventTypeActionApplied,
		EventTypeHandSettled,
	}, rec.types())

	for _, e := range rec.events {
		assert.Equal(t, testEpoch, e.Timestamp(), "%s uses the session clock", e.EventType())
	}

	started := rec.events[0].(HandStartedEvent)
	assert.Equal(t, 1, started.HandNumber)
	assert.Len(t, started.Seats, 2)
	for _, seat := range started.Seats {
		assert.Nil(t, seat.HoleCards)
	}

	dealt := rec.events[1].(CardsDealtEvent)
	assert.Equal(t, HumanSeat, dealt.Seat)
	assert.Len(t, dealt.Cards, 2)
	assert.Equal(t, Preflop, dealt.Street)

	bet := rec.events[3].(ActionAppliedEvent)
	assert.Equal(t, Bet, bet.Kind)
	assert.Equal(t, 50, bet.Committed)
	assert.Equal(t, 50, bet.CurrentBet)
	assert.Equal(t, 50, bet.Pot)

	settled := rec.events[5].(HandSettledEvent)
	assert.Equal(t, HumanSeat, settled.Result.WinningSeat())
	assert.Equal(t, 50, settled.Result.Pot)
}

func TestCommunityCardsEvents(t *testing.T) {
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	s := newTestSession(t, 1, 1000, WithEventBus(bus), WithDeck(stackedDeck(t, "AsAh 7c2d Kd9c4h 3s Jc")))
	require.NoError(t, s.DealStreet())
	require.NoError(t, s.SubmitAction(HumanSeat, Check, 0))
	require.NoError(t, s.SubmitAction(1, Check, 0))
	require.NoError(t, s.DealStreet())

	var board []CardsDealtEvent
	for _, e := range rec.events {
		if d, ok := e.(CardsDealtEvent); ok && d.Seat == NoSeat {
			board = append(board, d)
		}
	}
	require.Len(t, board, 1)
	assert.Equal(t, Flop, board[0].Street)
	assert.Equal(t, "K♦ 9♣ 4♥", deck.FormatCards(board[0].Cards))

	advanced := rec.events[len(rec.events)-1].(StreetAdvancedEvent)
	assert.Equal(t, Flop, advanced.Street)
	assert.Len(t, advanced.Community, 3)
}

func TestEventBusSubscription(t *testing.T) {
	bus := NewEventBus()
	a, b := &eventRecorder{}, &eventRecorder{}
	calls := 0

	bus.Subscribe(a)
	bus.Subscribe(b)
	bus.Subscribe(EventSubscriberFunc(func(Event) { calls++ }))

	bus.Publish(PlayerLeftEvent{Seat: HumanSeat})
	bus.Unsubscribe(a)
	bus.Publish(PlayerLeftEvent{Seat: HumanSeat})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
	assert.Equal(t, 2, calls)
}

// seatCounter is a value subscriber holding a map.
type seatCounter struct {
	seen map[SeatID]int
}

func (c seatCounter) OnEvent(e Event) {
	if left, ok := e.(PlayerLeftEvent); ok {
		c.seen[left.Seat]++
	}
}

func TestEventBusUnsubscribeValueSubscriber(t *testing.T) {
	bus := NewEventBus()
	counter := seatCounter{seen: map[SeatID]int{}}
	rec := &eventRecorder{}
	bus.Subscribe(counter)
	bus.Subscribe(rec)

	assert.NotPanics(t, func() { bus.Unsubscribe(counter) })
	assert.NotPanics(t, func() { bus.Unsubscribe(rec) })
	bus.Publish(PlayerLeftEvent{Seat: HumanSeat})

	// Value subscribers cannot be identified, so they stay subscribed.
	assert.Equal(t, 1, counter.seen[HumanSeat])
	assert.Empty(t, rec.events)
}
