package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/phh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(t *testing.T, s string) []deck.Card {
	t.Helper()
	c, err := deck.ParseCards(s)
	require.NoError(t, err)
	return c
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name     string
		seat     int
		action   string
		totalBet int
		want     string
	}{
		{"fold", 0, "fold", 0, "p1 f"},
		{"check", 1, "check", 0, "p2 cc"},
		{"call", 3, "call", 50, "p4 cc"},
		{"raise", 0, "raise", 120, "p1 cbr 120"},
		{"bet", 1, "bet", 50, "p2 cbr 50"},
		{"allin", 0, "allin", 350, "p1 cbr 350"},
		{"unknown", 2, "weird", 10, "# p3 weird 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phh.FormatAction(tt.seat, tt.action, tt.totalBet))
		})
	}
}

func TestDealerActions(t *testing.T) {
	assert.Equal(t, "d dh p1 AhTd", phh.DealHole(0, cards(t, "Ah10d")))
	assert.Equal(t, "d db Kd9c4h", phh.DealBoard(cards(t, "Kd 9c 4h")))
	assert.Equal(t, "p2 sm 7c2d", phh.ShowHand(1, cards(t, "7c2d")))
}

func TestNewHand(t *testing.T) {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.FixedZone("AEDT", 11*3600))
	hand := phh.New("abc", []string{"You", "AI-1"}, []int{1000, 900}, 50, at)

	assert.Equal(t, phh.VariantNoLimitHoldem, hand.Variant)
	assert.Equal(t, 2, hand.SeatCount)
	assert.Equal(t, []int{0, 0}, hand.Antes)
	assert.Equal(t, []int{0, 0}, hand.BlindsOrStraddles)
	assert.Equal(t, "17:05:06", hand.Time, "times are recorded in UTC")
	assert.Equal(t, "UTC", hand.TimeZone)
	assert.Equal(t, 2, hand.Day)
	assert.Equal(t, 2, hand.Month)
	assert.Equal(t, 2025, hand.Year)
}

func TestEncodeRoundTrip(t *testing.T) {
	hand := phh.New("01jk", []string{"You", "AI-1"}, []int{1000, 1000}, 50, time.Time{})
	hand.Add(
		phh.DealHole(0, cards(t, "AsAh")),
		phh.DealHole(1, cards(t, "7c2d")),
		phh.FormatAction(0, "bet", 100),
		phh.FormatAction(1, "call", 100),
		phh.DealBoard(cards(t, "Kd9c4h")),
	)
	hand.FinishingStacks = []int{1100, 900}
	hand.Winnings = []int{200, 0}
	hand.Metadata = map[string]any{"hand_number": int64(3)}

	data, err := phh.EncodeToBytes(hand)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `variant = "NT"`)
	assert.Contains(t, text, `hand = "01jk"`)
	assert.Contains(t, text, "min_bet = 50")
	assert.Contains(t, text, `"p1 cbr 100"`)
	assert.NotContains(t, text, "time =", "zero timestamps are omitted")

	decoded, err := phh.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, hand.Actions, decoded.Actions)
	assert.Equal(t, hand.StartingStacks, decoded.StartingStacks)
	assert.Equal(t, hand.Winnings, decoded.Winnings)
	assert.Equal(t, hand.Players, decoded.Players)
	assert.Equal(t, int64(3), decoded.Metadata["hand_number"])
}

func TestEncodeNil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, phh.Encode(&buf, nil))
}
