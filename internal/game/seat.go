package game

import (
	"slices"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/evaluator"
)

// SeatID indexes a seat in the session's seat arena.
type SeatID int

// HumanSeat is the seat of the human player, who acts first on every street.
const HumanSeat SeatID = 0

// NoSeat marks the absence of a seat, e.g. when nobody is to act.
const NoSeat SeatID = -1

// SeatKind tells who decides a seat's actions
type SeatKind int

const (
	Human SeatKind = iota
	Scripted
)

func (k SeatKind) String() string {
	if k == Human {
		return "human"
	}
	return "scripted"
}

// Seat is one participant at the table. Chips leave a seat only through
// bet-family actions and come back only at settlement.
type Seat struct {
	ID          SeatID
	Name        string
	Kind        SeatKind
	Chips       int
	StreetStake int // committed on the current street
	HandStake   int // committed over the whole hand
	HoleCards   []deck.Card
	Best        *evaluator.Hand // nil until five cards are known
	Dealt       bool            // dealt into the current hand
	Folded      bool
	Active      bool // false once the seat has busted
	AllIn       bool

	// Scripted seats only.
	Agent   Agent
	Profile AIProfile
}

// InHand returns true if the seat holds cards in the current hand
func (s *Seat) InHand() bool {
	return s.Dealt && !s.Folded
}

// CanAct returns true if the seat still makes betting decisions this hand
func (s *Seat) CanAct() bool {
	return s.InHand() && !s.AllIn
}

// Category is the seat's current hand category. Before five cards are
// known it falls back to the preflop classification of the hole cards.
func (s *Seat) Category() evaluator.Category {
	if s.Best != nil {
		return s.Best.Category
	}
	return evaluator.PreflopCategory(s.HoleCards)
}

// commit moves chips from the seat's stack into its stakes.
func (s *Seat) commit(amount int) {
	s.Chips -= amount
	s.StreetStake += amount
	s.HandStake += amount
	if s.Chips == 0 {
		s.AllIn = true
	}
}

func (s *Seat) resetHand() {
	s.StreetStake = 0
	s.HandStake = 0
	s.HoleCards = nil
	s.Best = nil
	s.Dealt = false
	s.Folded = false
	s.AllIn = false
}

// SeatView is a read-only snapshot of a seat.
type SeatView struct {
	ID          SeatID
	Name        string
	Kind        SeatKind
	Chips       int
	StreetStake int
	HandStake   int
	HoleCards   []deck.Card     // nil when hidden from the viewer
	Best        *evaluator.Hand // nil when hidden or not yet known
	InHand      bool
	Folded      bool
	Active      bool
	AllIn       bool
}

func (s *Seat) view(showCards bool) SeatView {
	v := SeatView{
		ID:          s.ID,
		Name:        s.Name,
		Kind:        s.Kind,
		Chips:       s.Chips,
		StreetStake: s.StreetStake,
		HandStake:   s.HandStake,
		InHand:      s.InHand(),
		Folded:      s.Folded,
		Active:      s.Active,
		AllIn:       s.AllIn,
	}
	if showCards {
		v.HoleCards = slices.Clone(s.HoleCards)
		if s.Best != nil {
			best := *s.Best
			v.Best = &best
		}
	}
	return v
}
