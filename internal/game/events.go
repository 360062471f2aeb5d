package game

import (
	"reflect"
	"slices"
	"time"

	"github.com/lox/casino/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for engine state transitions
const (
	EventTypeHandStarted    EventType = "hand_started"
	EventTypeCardsDealt     EventType = "cards_dealt"
	EventTypeActionApplied  EventType = "action_applied"
	EventTypeStreetAdvanced EventType = "street_advanced"
	EventTypeHandSettled    EventType = "hand_settled"
	EventTypeSeatEliminated EventType = "seat_eliminated"
	EventTypePlayerLeft     EventType = "player_left"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a discrete state transition published by a Session. Events are
// delivered inline while the session changes state, so subscribers must
// return promptly and must not call back into the session.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartedEvent is published when a new hand is dealt
type HandStartedEvent struct {
	HandID     string
	HandNumber int
	Seats      []SeatView // chip counts before the hand, cards hidden
	Increment  int
	timestamp  time.Time
}

func (e HandStartedEvent) EventType() EventType { return EventTypeHandStarted }
func (e HandStartedEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published for hole cards (Seat set) and community
// cards (Seat is NoSeat). Hole cards of scripted seats are included so
// recorders can log the hand; presentation layers must not show them.
type CardsDealtEvent struct {
	HandID    string
	Street    Street
	Seat      SeatID
	Cards     []deck.Card
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// ActionAppliedEvent is published after a seat's action changes the table
type ActionAppliedEvent struct {
	HandID      string
	Street      Street
	Seat        SeatID
	Name        string
	Kind        ActionKind
	Committed   int // chips moved from the stack by this action
	StreetStake int
	CurrentBet  int
	Pot         int
	AllIn       bool
	Reasoning   string
	timestamp   time.Time
}

func (e ActionAppliedEvent) EventType() EventType { return EventTypeActionApplied }
func (e ActionAppliedEvent) Timestamp() time.Time { return e.timestamp }

// StreetAdvancedEvent is published when betting moves to a new street
type StreetAdvancedEvent struct {
	HandID    string
	Street    Street
	Community []deck.Card
	Pot       int
	timestamp time.Time
}

func (e StreetAdvancedEvent) EventType() EventType { return EventTypeStreetAdvanced }
func (e StreetAdvancedEvent) Timestamp() time.Time { return e.timestamp }

// HandSettledEvent is published once the pot has been awarded
type HandSettledEvent struct {
	Result    Result
	timestamp time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.timestamp }

// SeatEliminatedEvent is published when a seat runs out of chips
type SeatEliminatedEvent struct {
	Seat      SeatID
	Name      string
	timestamp time.Time
}

func (e SeatEliminatedEvent) EventType() EventType { return EventTypeSeatEliminated }
func (e SeatEliminatedEvent) Timestamp() time.Time { return e.timestamp }

// PlayerLeftEvent is published when the human leaves the table
type PlayerLeftEvent struct {
	Seat      SeatID
	Forfeited int // stake left in the pot
	timestamp time.Time
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }
func (e PlayerLeftEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events. Implementations should
// use pointer receivers so they can later be unsubscribed.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(Event)

func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events. Pass a pointer (or an
// EventSubscriberFunc) so Unsubscribe can identify it.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber by pointer identity. Function and
// other non-pointer subscribers cannot be compared safely and are never
// removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if !isPointer(subscriber) {
		return
	}
	bus.subscribers = slices.DeleteFunc(bus.subscribers, func(s EventSubscriber) bool {
		return isPointer(s) && s == subscriber
	})
}

func isPointer(subscriber EventSubscriber) bool {
	return subscriber != nil && reflect.TypeOf(subscriber).Kind() == reflect.Pointer
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
