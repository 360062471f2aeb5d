package game

import (
	"fmt"
	"strings"
)

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// boardCards is the number of community cards dealt when entering a street.
func (s Street) boardCards() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// ActionKind represents a player action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionKind) String() string {
	if a < Fold || a > AllIn {
		return "unknown"
	}
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// ParseActionKind parses an action name such as "call" or "all-in".
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold", "f":
		return Fold, nil
	case "check", "k":
		return Check, nil
	case "call", "c":
		return Call, nil
	case "bet", "b":
		return Bet, nil
	case "raise", "r":
		return Raise, nil
	case "allin", "all-in", "a":
		return AllIn, nil
	}
	return Fold, fmt.Errorf("unknown action %q", s)
}

// DefaultBetIncrement is the amount a bet or raise adds to the current bet.
const DefaultBetIncrement = 50

// ValidAction is an action a seat may legally take. For Bet and Raise the
// amounts are street stake totals; for Call and AllIn they are the chips
// the action would commit.
type ValidAction struct {
	Kind      ActionKind
	MinAmount int
	MaxAmount int
}

// BettingRound holds the betting state of one street
type BettingRound struct {
	CurrentBet int
	Increment  int
	Acted      []bool
}

// NewBettingRound creates a new betting round
func NewBettingRound(numSeats, increment int) *BettingRound {
	return &BettingRound{
		Increment: increment,
		Acted:     make([]bool, numSeats),
	}
}

// Reset clears the round for a new street
func (br *BettingRound) Reset() {
	br.CurrentBet = 0
	clear(br.Acted)
}

// MarkActed marks a seat as having acted
func (br *BettingRound) MarkActed(id SeatID) {
	if id >= 0 && int(id) < len(br.Acted) {
		br.Acted[id] = true
	}
}

// reopen makes every other seat respond to a new bet.
func (br *BettingRound) reopen(by SeatID) {
	clear(br.Acted)
	br.MarkActed(by)
}

// ValidActions returns the actions seat may take
func (br *BettingRound) ValidActions(seat *Seat) []ValidAction {
	if !seat.CanAct() {
		return nil
	}

	actions := []ValidAction{{Kind: Fold}}
	toCall := br.CurrentBet - seat.StreetStake

	if toCall <= 0 {
		actions = append(actions, ValidAction{Kind: Check})
	} else {
		call := min(toCall, seat.Chips)
		actions = append(actions, ValidAction{Kind: Call, MinAmount: call, MaxAmount: call})
	}

	maxTarget := seat.StreetStake + seat.Chips
	if br.CurrentBet == 0 {
		if maxTarget >= br.Increment {
			actions = append(actions, ValidAction{Kind: Bet, MinAmount: br.Increment, MaxAmount: maxTarget})
		}
	} else if minTarget := br.CurrentBet + br.Increment; maxTarget >= minTarget {
		actions = append(actions, ValidAction{Kind: Raise, MinAmount: minTarget, MaxAmount: maxTarget})
	}

	if seat.Chips > 0 {
		actions = append(actions, ValidAction{Kind: AllIn, MinAmount: seat.Chips, MaxAmount: seat.Chips})
	}
	return actions
}

// Validate checks an action against the round and returns the seat's
// street stake after the action. It never mutates state.
func (br *BettingRound) Validate(seat *Seat, kind ActionKind, amount int) (int, error) {
	if amount < 0 {
		return 0, illegal(seat, kind, amount, "negative amount")
	}
	toCall := br.CurrentBet - seat.StreetStake

	switch kind {
	case Fold:
		return seat.StreetStake, nil

	case Check:
		if toCall > 0 {
			return 0, illegal(seat, kind, amount, "must call %d", toCall)
		}
		return seat.StreetStake, nil

	case Call:
		if toCall <= 0 {
			return 0, illegal(seat, kind, amount, "no bet to call")
		}
		// A short call commits the rest of the stack.
		return seat.StreetStake + min(toCall, seat.Chips), nil

	case Bet, Raise:
		if kind == Bet && br.CurrentBet != 0 {
			return 0, illegal(seat, kind, amount, "a bet of %d is already open, call or raise", br.CurrentBet)
		}
		if kind == Raise && br.CurrentBet == 0 {
			return 0, illegal(seat, kind, amount, "no bet to raise, bet instead")
		}
		if toCall >= seat.Chips {
			return 0, illegal(seat, kind, amount, "cannot cover the current bet, call or fold")
		}
		minTarget := br.CurrentBet + br.Increment
		target := amount
		if target == 0 {
			target = minTarget
		}
		if target < minTarget {
			return 0, illegal(seat, kind, amount, "minimum is %d", minTarget)
		}
		if target-seat.StreetStake > seat.Chips {
			return 0, illegal(seat, kind, amount, "insufficient chips, %d available", seat.Chips)
		}
		return target, nil

	case AllIn:
		if seat.Chips == 0 {
			return 0, illegal(seat, kind, amount, "no chips left")
		}
		return seat.StreetStake + seat.Chips, nil
	}

	return 0, illegal(seat, kind, amount, "unknown action")
}

// IsComplete reports whether the street's betting is finished: at most one
// seat is left in the hand, or every seat that can still act has acted
// and matched the current bet.
func (br *BettingRound) IsComplete(seats []*Seat) bool {
	inHand, canAct := 0, 0
	for _, s := range seats {
		if s.InHand() {
			inHand++
		}
		if s.CanAct() {
			canAct++
		}
	}
	if inHand <= 1 {
		return true
	}

	for _, s := range seats {
		if s.CanAct() && s.StreetStake != br.CurrentBet {
			return false
		}
	}
	if canAct <= 1 {
		return true
	}

	for _, s := range seats {
		if s.CanAct() && !br.Acted[s.ID] {
			return false
		}
	}
	return true
}
