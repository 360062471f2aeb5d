package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
)

// Payout is the share of the pot awarded to one seat
type Payout struct {
	Seat     SeatID
	Name     string
	Category evaluator.Category
	Best     *evaluator.Hand // nil when the hand ended before five cards were known
	Amount   int
}

// Result is the outcome of a settled hand
type Result struct {
	HandID     string
	HandNumber int
	Street     Street // last street reached
	Pot        int
	Showdown   bool // false when everyone else folded
	Board      []deck.Card
	Winners    []Payout // ordered by seat

	Hands       map[SeatID]evaluator.Hand // showdown hands only
	HoleCards   map[SeatID][]deck.Card    // showdown hands only
	Contributed map[SeatID]int            // chips each dealt seat put in the pot
	FinalChips  map[SeatID]int
}

// WinningSeat returns the first winner, or NoSeat for an empty result
func (r Result) WinningSeat() SeatID {
	if len(r.Winners) == 0 {
		return NoSeat
	}
	return r.Winners[0].Seat
}

// PayoutFor returns the chips awarded to a seat
func (r Result) PayoutFor(id SeatID) int {
	for _, w := range r.Winners {
		if w.Seat == id {
			return w.Amount
		}
	}
	return 0
}

// Net returns a seat's chip change over the hand
func (r Result) Net(id SeatID) int {
	return r.PayoutFor(id) - r.Contributed[id]
}

// Settle awards the pot once the hand is over: immediately when a single
// seat is left, otherwise at showdown. Calling it again returns the same
// result until the next hand is dealt.
func (s *Session) Settle() (Result, error) {
	if !s.live {
		if s.result != nil {
			return cloneResult(*s.result), nil
		}
		return Result{}, ErrNoHand
	}
	if !s.handOver() {
		return Result{}, fmt.Errorf("%w: %s is not finished", ErrHandInProgress, s.street)
	}

	s.collect()

	result := Result{
		HandID:      s.handID,
		HandNumber:  s.handNumber,
		Street:      s.street,
		Pot:         s.pot,
		Board:       slices.Clone(s.board),
		Hands:       make(map[SeatID]evaluator.Hand),
		HoleCards:   make(map[SeatID][]deck.Card),
		Contributed: make(map[SeatID]int),
		FinalChips:  make(map[SeatID]int),
	}

	var contenders []*Seat
	for _, seat := range s.seats {
		if seat.Dealt {
			result.Contributed[seat.ID] = seat.HandStake
		}
		if seat.InHand() {
			contenders = append(contenders, seat)
		}
	}
	if len(contenders) == 0 {
		return Result{}, fmt.Errorf("settle hand %s: no seat left in the hand", s.handID)
	}

	winners := contenders
	if len(contenders) > 1 {
		result.Showdown = true
		var err error
		if winners, err = s.showdown(contenders, &result); err != nil {
			return Result{}, err
		}
	}

	share, remainder := s.pot/len(winners), s.pot%len(winners)
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		w.Chips += amount

		payout := Payout{Seat: w.ID, Name: w.Name, Category: w.Category(), Amount: amount}
		if w.Best != nil {
			best := *w.Best
			payout.Best = &best
		}
		result.Winners = append(result.Winners, payout)
	}

	for _, seat := range s.seats {
		result.FinalChips[seat.ID] = seat.Chips
	}

	s.result = &result
	s.bus.Publish(HandSettledEvent{Result: cloneResult(result), timestamp: s.now()})
	s.logger.Info("hand settled",
		"hand", s.handID,
		"pot", result.Pot,
		"winner", result.Winners[0].Name,
		"category", result.Winners[0].Category,
		"showdown", result.Showdown,
		"split", len(result.Winners) > 1)

	s.finishHand()
	return cloneResult(result), nil
}

// showdown returns the contenders holding the best hand, in seat order.
func (s *Session) showdown(contenders []*Seat, result *Result) ([]*Seat, error) {
	for _, seat := range contenders {
		if seat.Best == nil {
			hand, err := evaluator.Evaluate(append(slices.Clone(seat.HoleCards), s.board...))
			if err != nil {
				return nil, fmt.Errorf("evaluate seat %d at showdown: %w", seat.ID, err)
			}
			seat.Best = &hand
		}
		result.Hands[seat.ID] = *seat.Best
		result.HoleCards[seat.ID] = slices.Clone(seat.HoleCards)
	}

	var winners []*Seat
	for _, seat := range contenders {
		if len(winners) == 0 {
			winners = append(winners, seat)
			continue
		}
		switch c := evaluator.Compare(*seat.Best, *winners[0].Best); {
		case c > 0:
			winners = append(winners[:0], seat)
		case c == 0:
			winners = append(winners, seat)
		}
	}
	return winners, nil
}

// finishHand clears per-hand state and retires seats without chips.
func (s *Session) finishHand() {
	for _, seat := range s.seats {
		seat.resetHand()
		if seat.Active && seat.Chips == 0 {
			seat.Active = false
			s.bus.Publish(SeatEliminatedEvent{Seat: seat.ID, Name: seat.Name, timestamp: s.now()})
			s.logger.Info("seat eliminated", "seat", seat.Name)
		}
	}
	s.betting.Reset()
	s.pot = 0
	s.board = nil
	s.turn = NoSeat
	s.streetClosed = false
	s.live = false
}

func cloneResult(r Result) Result {
	r.Board = slices.Clone(r.Board)
	r.Winners = slices.Clone(r.Winners)
	r.Hands = maps.Clone(r.Hands)
	r.HoleCards = maps.Clone(r.HoleCards)
	r.Contributed = maps.Clone(r.Contributed)
	r.FinalChips = maps.Clone(r.FinalChips)
	return r
}
