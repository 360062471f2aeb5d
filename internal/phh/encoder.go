package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/casino/internal/deck"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a PHH document
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

func player(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}

// Cards renders cards in PHH notation, e.g. "AsTd".
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Notation())
	}
	return b.String()
}

// DealHole is the dealer action giving a seat its hole cards
func DealHole(seat int, cards []deck.Card) string {
	return fmt.Sprintf("d dh %s %s", player(seat), Cards(cards))
}

// DealBoard is the dealer action revealing community cards
func DealBoard(cards []deck.Card) string {
	return "d db " + Cards(cards)
}

// ShowHand is a seat showing its hole cards at showdown
func ShowHand(seat int, cards []deck.Card) string {
	return fmt.Sprintf("%s sm %s", player(seat), Cards(cards))
}

// FormatAction converts an engine action name to a PHH action string.
// Bets, raises and all-ins record the seat's street stake after the action.
func FormatAction(seat int, action string, totalBet int) string {
	p := player(seat)
	switch action {
	case "fold":
		return p + " f"
	case "check", "call":
		return p + " cc"
	case "bet", "raise", "allin":
		return fmt.Sprintf("%s cbr %d", p, totalBet)
	default:
		return fmt.Sprintf("# %s %s %d", p, action, totalBet)
	}
}
