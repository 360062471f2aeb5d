package game_test

import (
	"testing"

	"github.com/lox/casino/internal/game"
	"github.com/lox/casino/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The package documentation's loop must finish a hand for any deal.
func TestBasicUsageLoopFinishesHand(t *testing.T) {
	for seed := range int64(20) {
		s, err := game.NewSession(randutil.New(seed), 3, 1000)
		require.NoError(t, err)
		require.NoError(t, s.DealStreet())

		status := game.StatusAwaitingHuman
		for range 50 {
			status, err = s.Advance()
			require.NoError(t, err)
			if status != game.StatusAwaitingHuman {
				break
			}
			kind := game.Check
			if s.ToCall(game.HumanSeat) > 0 {
				kind = game.Call
			}
			require.NoError(t, s.SubmitAction(game.HumanSeat, kind, 0), "seed %d", seed)
		}
		assert.Contains(t, []game.Status{game.StatusHandComplete, game.StatusSessionOver}, status, "seed %d", seed)

		result, ok := s.LastResult()
		require.True(t, ok)
		assert.Equal(t, 1, result.HandNumber)
	}
}
