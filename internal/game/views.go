package game

import (
	"fmt"
	"slices"

	"github.com/lox/casino/internal/deck"
)

// TableView is a read-only snapshot of the table
type TableView struct {
	HandID       string
	HandNumber   int
	Street       Street
	Community    []deck.Card
	Pot          int // collected pot plus stakes on the current street
	CurrentBet   int
	Increment    int
	ActiveSeat   SeatID // NoSeat when nobody is to act
	Live         bool
	StreetClosed bool
}

// Table returns a snapshot of the table
func (s *Session) Table() TableView {
	return TableView{
		HandID:       s.handID,
		HandNumber:   s.handNumber,
		Street:       s.street,
		Community:    slices.Clone(s.board),
		Pot:          s.potTotal(),
		CurrentBet:   s.betting.CurrentBet,
		Increment:    s.betting.Increment,
		ActiveSeat:   s.turn,
		Live:         s.live,
		StreetClosed: s.streetClosed,
	}
}

// Seats returns snapshots of every seat. Hole cards are visible for the
// human seat, and for every seat still in the hand once it reaches showdown.
func (s *Session) Seats() []SeatView {
	return s.views(s.cardsVisible)
}

// Seat returns a snapshot of one seat
func (s *Session) Seat(id SeatID) (SeatView, error) {
	if id < 0 || int(id) >= len(s.seats) {
		return SeatView{}, fmt.Errorf("%w: no seat %d", ErrInvalidSeat, id)
	}
	seat := s.seats[id]
	return seat.view(s.cardsVisible(seat)), nil
}

// ValidActions returns the actions a seat may take now. It is empty unless
// the seat is the one to act.
func (s *Session) ValidActions(id SeatID) []ValidAction {
	if !s.live || s.streetClosed || s.turn != id {
		return nil
	}
	return s.betting.ValidActions(s.seats[id])
}

// ToCall returns the chips a seat needs to match the current bet
func (s *Session) ToCall(id SeatID) int {
	if id < 0 || int(id) >= len(s.seats) {
		return 0
	}
	return max(s.betting.CurrentBet-s.seats[id].StreetStake, 0)
}

// LastResult returns the most recent settled hand
func (s *Session) LastResult() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return cloneResult(*s.result), true
}

// HandNumber returns the number of hands dealt so far
func (s *Session) HandNumber() int {
	return s.handNumber
}

func (s *Session) cardsVisible(seat *Seat) bool {
	if seat.ID == HumanSeat {
		return true
	}
	return s.live && s.street == Showdown && seat.InHand()
}

func (s *Session) views(visible func(*Seat) bool) []SeatView {
	views := make([]SeatView, len(s.seats))
	for i, seat := range s.seats {
		views[i] = seat.view(visible(seat))
	}
	return views
}

func (s *Session) decisionView(seat *Seat) DecisionView {
	return DecisionView{
		Seat:     seat.view(true),
		Category: seat.Category(),
		Table:    s.Table(),
		ToCall:   s.ToCall(seat.ID),
		Valid:    s.betting.ValidActions(seat),
	}
}
