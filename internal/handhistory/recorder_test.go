package handhistory

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/deck"
	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/phh"
	"github.com/lox/casino/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRecorderWritesShowdownHand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hands")
	rec, err := NewRecorder(dir, "test-table", testLogger())
	require.NoError(t, err)

	bus := game.NewEventBus()
	bus.Subscribe(rec)

	cards, err := deck.ParseCards("AsAh 7c2d Kd9c4h 3s Jc")
	require.NoError(t, err)
	s, err := game.NewSession(randutil.New(1), 1, 1000,
		game.WithLogger(testLogger()),
		game.WithEventBus(bus),
		game.WithDeck(deck.NewStacked(cards...)))
	require.NoError(t, err)

	require.NoError(t, s.DealStreet())
	require.NoError(t, s.SubmitAction(game.HumanSeat, game.Bet, 100))
	require.NoError(t, s.SubmitAction(1, game.Call, 0))
	for range 3 {
		require.NoError(t, s.DealStreet())
		require.NoError(t, s.SubmitAction(game.HumanSeat, game.Check, 0))
		require.NoError(t, s.SubmitAction(1, game.Check, 0))
	}
	require.NoError(t, s.DealStreet())
	result, err := s.Settle()
	require.NoError(t, err)

	require.NoError(t, rec.Err())
	written := rec.Written()
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(dir, result.HandID+Extension), written[0])

	f, err := os.Open(written[0])
	require.NoError(t, err)
	defer f.Close()

	hand, err := phh.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, "NT", hand.Variant)
	assert.Equal(t, "test-table", hand.Table)
	assert.Equal(t, result.HandID, hand.HandID)
	assert.Equal(t, []string{"You", "AI-1"}, hand.Players)
	assert.Equal(t, []int{1000, 1000}, hand.StartingStacks)
	assert.Equal(t, []int{1100, 900}, hand.FinishingStacks)
	assert.Equal(t, []int{200, 0}, hand.Winnings)
	assert.Equal(t, 50, hand.MinBet)
	assert.Equal(t, []string{
		"d dh p1 AsAh",
		"d dh p2 7c2d",
		"p1 cbr 100",
		"p2 cc",
		"d db Kd9c4h",
		"p1 cc",
		"p2 cc",
		"d db 3s",
		"p1 cc",
		"p2 cc",
		"d db Jc",
		"p1 cc",
		"p2 cc",
		"p1 sm AsAh",
		"p2 sm 7c2d",
	}, hand.Actions)
}

func TestRecorderFoldedHandHasNoShowdown(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, "", testLogger())
	require.NoError(t, err)

	bus := game.NewEventBus()
	bus.Subscribe(rec)
	s, err := game.NewSession(randutil.New(2), 2, 500, game.WithLogger(testLogger()), game.WithEventBus(bus))
	require.NoError(t, err)

	require.NoError(t, s.DealStreet())
	require.NoError(t, s.SubmitAction(game.HumanSeat, game.AllIn, 0))
	require.NoError(t, s.SubmitAction(1, game.Fold, 0))
	require.NoError(t, s.SubmitAction(2, game.Fold, 0))
	_, err = s.Settle()
	require.NoError(t, err)

	require.Len(t, rec.Written(), 1)
	data, err := os.ReadFile(rec.Written()[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"p1 cbr 500"`)
	assert.NotContains(t, string(data), " sm ")
}

func TestNewRecorderRequiresDir(t *testing.T) {
	_, err := NewRecorder("", "", testLogger())
	assert.Error(t, err)
}

func TestNewRecorderNilLogger(t *testing.T) {
	var r *Recorder
	var err error
	require.NotPanics(t, func() { r, err = NewRecorder(t.TempDir(), "t", nil) })
	require.NoError(t, err)
	assert.NotNil(t, r.logger)
}
