package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.WinRate())
	assert.Error(t, stats.Validate(), "no hands recorded")
}

func TestStatisticsSingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{Net: 250, Won: true, WentToShowdown: true, FinalPotSize: 500, StreetReached: "showdown"})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 250.0, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 250.0, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.Equal(t, 500, stats.MaxPot)
	assert.Equal(t, 250, stats.BiggestWin)
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []HandResult{
		{Net: 100, Won: true, FinalPotSize: 200},
		{Net: -200, WentToShowdown: true, FinalPotSize: 400},
		{Net: 300, Won: true, WentToShowdown: true, FinalPotSize: 600},
		{Net: 0, Won: true, FinalPotSize: 100},
		{Net: -100, Folded: true, FinalPotSize: 300},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 20.0, stats.Mean(), 1e-9)
	// values 100, -200, 300, 0, -100 around mean 20
	expectedVar := (80.0*80 + 220*220 + 280*280 + 20*20 + 120*120) / 4
	assert.InDelta(t, expectedVar, stats.Variance(), 1e-6)
	assert.InDelta(t, math.Sqrt(expectedVar), stats.StdDev(), 1e-6)
	assert.Equal(t, 0.0, stats.Median())
	assert.Equal(t, -200.0, stats.Percentile(0))
	assert.Equal(t, 300.0, stats.Percentile(1))

	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 2, stats.NonShowdownWins)
	assert.Equal(t, 1, stats.Folds)
	assert.Equal(t, 2, stats.Showdowns)
	assert.Equal(t, 100, stats.ShowdownNet)
	assert.Equal(t, 0, stats.NonShowdownNet)
	assert.Equal(t, 600, stats.MaxPot)
	assert.Equal(t, 300, stats.BiggestWin)
	assert.Equal(t, -200, stats.WorstLoss)
	assert.InDelta(t, 0.6, stats.WinRate(), 1e-9)
	require.NoError(t, stats.Validate())

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())
}

func TestStatisticsMerge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	first := []HandResult{{Net: 50, Won: true}, {Net: -50, Folded: true}}
	second := []HandResult{{Net: 400, Won: true, WentToShowdown: true, FinalPotSize: 800}}
	for _, r := range first {
		a.Add(r)
		all.Add(r)
	}
	for _, r := range second {
		b.Add(r)
		all.Add(r)
	}

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, all.Hands, a.Hands)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
	assert.Equal(t, all.Wins, a.Wins)
	assert.Equal(t, all.ShowdownWins, a.ShowdownWins)
	assert.Equal(t, all.MaxPot, a.MaxPot)
	assert.Equal(t, all.WorstLoss, a.WorstLoss)
	require.NoError(t, a.Validate())
}

func TestValidateDetectsMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{Net: 10, Won: true})
	stats.ShowdownNet = 5

	err := stats.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger mismatch")
}
