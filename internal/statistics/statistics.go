package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is one seat's outcome of a single settled hand
type HandResult struct {
	Net            int    // chips won minus chips put in
	Won            bool   // took at least part of the pot
	WentToShowdown bool   // hand reached showdown with this seat still in it
	Folded         bool   // seat folded before the end
	FinalPotSize   int    // pot in chips
	StreetReached  string // furthest street of the hand
}

// Statistics tracks one seat's results across hands, in chips.
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64   // sum of squares for variance
	Values []float64 // all results for median/percentile

	Wins            int
	ShowdownWins    int // pots won at showdown
	NonShowdownWins int // pots won when everyone else folded
	Folds           int
	Showdowns       int

	ShowdownNet    int // chips from hands that reached showdown, wins and losses
	NonShowdownNet int
	AllNet         int // total, for the ledger check

	MaxPot     int // largest pot this seat played in
	BiggestWin int
	WorstLoss  int // most negative net, as a negative number
}

// Mean returns the average net chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of hands in which the seat won chips
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if result.Won {
		s.Wins++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Folded {
		s.Folds++
	}

	if result.WentToShowdown {
		s.Showdowns++
		s.ShowdownNet += result.Net
	} else {
		s.NonShowdownNet += result.Net
	}
	s.AllNet += result.Net

	s.MaxPot = max(s.MaxPot, result.FinalPotSize)
	s.BiggestWin = max(s.BiggestWin, result.Net)
	s.WorstLoss = min(s.WorstLoss, result.Net)
}

// Merge folds other into s, e.g. to combine the same seat across tables.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.Folds += other.Folds
	s.Showdowns += other.Showdowns
	s.ShowdownNet += other.ShowdownNet
	s.NonShowdownNet += other.NonShowdownNet
	s.AllNet += other.AllNet
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.BiggestWin = max(s.BiggestWin, other.BiggestWin)
	s.WorstLoss = min(s.WorstLoss, other.WorstLoss)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return s.AllNet == s.ShowdownNet+s.NonShowdownNet && float64(s.AllNet) == s.Sum
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%d showdown=%d non-showdown=%d sum=%.0f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet, s.Sum)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.ShowdownWins+s.NonShowdownWins != s.Wins {
		return fmt.Errorf("wins (%d) do not match showdown (%d) plus non-showdown (%d) wins",
			s.Wins, s.ShowdownWins, s.NonShowdownWins)
	}
	if s.Wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", s.Wins, s.Hands)
	}
	return nil
}
