package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned for an action the current state does not allow.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvalidSeat is returned for actions addressed to a folded, inactive or unknown seat.
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrOutOfTurn is returned when a seat acts while another seat is to act.
	ErrOutOfTurn = errors.New("action out of turn")
	// ErrNoHand is returned when an operation needs a hand in progress.
	ErrNoHand = errors.New("no hand in progress")
	// ErrHandInProgress is returned when an operation needs the hand or street to be finished.
	ErrHandInProgress = errors.New("hand in progress")
	// ErrSessionOver is returned when a new hand cannot be dealt.
	ErrSessionOver = errors.New("session over")
	// ErrSessionClosed is returned after the human player has left the table.
	ErrSessionClosed = errors.New("session closed")
)

// ActionError describes a rejected action. It matches ErrIllegalAction
// with errors.Is.
type ActionError struct {
	Seat   SeatID
	Kind   ActionKind
	Amount int
	Reason string
}

func (e *ActionError) Error() string {
	if e.Amount > 0 {
		return fmt.Sprintf("seat %d cannot %s %d: %s", e.Seat, e.Kind, e.Amount, e.Reason)
	}
	return fmt.Sprintf("seat %d cannot %s: %s", e.Seat, e.Kind, e.Reason)
}

func (e *ActionError) Unwrap() error { return ErrIllegalAction }

func illegal(seat *Seat, kind ActionKind, amount int, format string, args ...any) error {
	return &ActionError{Seat: seat.ID, Kind: kind, Amount: amount, Reason: fmt.Sprintf(format, args...)}
}
