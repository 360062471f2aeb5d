package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/casino/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck(randutil.New(42))
	assert.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		require.True(t, c.Valid(), "invalid card %v", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}

func TestDeckConservation(t *testing.T) {
	for _, n := range []int{1, 7, 23, 52} {
		d := NewDeck(randutil.New(int64(n)))

		drawn := make(map[Card]bool)
		for i := 0; i < n; i++ {
			c, err := d.Draw()
			require.NoError(t, err)
			require.False(t, drawn[c], "card %v drawn twice", c)
			drawn[c] = true
		}

		require.Equal(t, 52-n, d.Remaining())
		for _, c := range d.Cards() {
			assert.False(t, drawn[c], "drawn card %v still in deck", c)
		}

		d.Reset()
		assert.Equal(t, 52, d.Remaining())
		assert.ElementsMatch(t, Standard(), d.Cards())
	}
}

func TestDrawFromEmptyDeck(t *testing.T) {
	d := NewDeck(randutil.New(1))
	_, err := d.DrawN(52)
	require.NoError(t, err)

	_, err = d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)

	_, err = d.DrawN(1)
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	a := NewDeck(randutil.New(99))
	b := NewDeck(randutil.New(99))

	ca, err := a.DrawN(10)
	require.NoError(t, err)
	cb, err := b.DrawN(10)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}

func TestStackedDeck(t *testing.T) {
	cards, err := ParseCards("AsKsQs")
	require.NoError(t, err)

	d := NewStacked(cards...)
	got, err := d.DrawN(3)
	require.NoError(t, err)
	assert.Equal(t, cards, got)

	_, err = d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)

	d.Reset()
	assert.Equal(t, 3, d.Remaining())
	assert.True(t, d.Contains(cards[1]))
}
