// Package evaluator finds the best five card poker hand in a pool of five
// to seven cards and estimates hand equity by simulation.
package evaluator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/casino/internal/deck"
)

var (
	// ErrCardCount is returned when a pool has fewer than 5 or more than 7 cards.
	ErrCardCount = errors.New("evaluator: need between 5 and 7 cards")
	// ErrDuplicateCard is returned when a pool contains the same card twice.
	ErrDuplicateCard = errors.New("evaluator: duplicate card")
)

// Evaluate returns the best five card hand that can be made from cards.
//
// Every five card subset is scored; a higher category replaces the best so
// far and equal categories are resolved by the descending rank vectors. The
// result does not depend on the order of the input.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrCardCount, len(cards))
	}

	pool := canonical(cards)
	for i := 1; i < len(pool); i++ {
		if pool[i] == pool[i-1] {
			return Hand{}, fmt.Errorf("%w: %s", ErrDuplicateCard, pool[i])
		}
	}

	n := len(pool)
	var best Hand
	found := false
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						h := evaluateFive([5]deck.Card{pool[a], pool[b], pool[c], pool[d], pool[e]})
						if !found || Compare(h, best) > 0 {
							best = h
							found = true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is Evaluate for pools known to be valid.
func MustEvaluate(cards []deck.Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// PreflopCategory classifies a starting hand before five cards are
// available: a pocket pair is a Pair, anything else is High Card.
func PreflopCategory(hole []deck.Card) Category {
	if len(hole) == 2 && hole[0].Rank == hole[1].Rank {
		return Pair
	}
	return HighCard
}

// canonical sorts a copy of cards by rank descending, then suit.
func canonical(cards []deck.Card) []deck.Card {
	pool := slices.Clone(cards)
	slices.SortFunc(pool, func(x, y deck.Card) int {
		if x.Rank != y.Rank {
			return cmp.Compare(y.Rank, x.Rank)
		}
		return cmp.Compare(x.Suit, y.Suit)
	})
	return pool
}

// evaluateFive scores exactly five cards sorted by rank descending.
func evaluateFive(cards [5]deck.Card) Hand {
	h := Hand{Cards: cards}
	for i, c := range cards {
		h.Ranks[i] = int(c.Rank)
	}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	// Multiplicity pattern, e.g. [3 2] for a full house.
	var counts [15]int
	for _, r := range h.Ranks {
		counts[r]++
	}
	pattern := make([]int, 0, 5)
	for _, n := range counts {
		if n > 0 {
			pattern = append(pattern, n)
		}
	}
	slices.SortFunc(pattern, func(x, y int) int { return cmp.Compare(y, x) })

	straight := false
	if len(pattern) == 5 {
		switch {
		case h.Ranks[0]-h.Ranks[4] == 4:
			straight = true
		case h.Ranks == [5]int{14, 5, 4, 3, 2}:
			straight = true
			h.Ranks = [5]int{5, 4, 3, 2, 1}
			h.Cards = [5]deck.Card{cards[1], cards[2], cards[3], cards[4], cards[0]}
		}
	}

	switch {
	case straight && flush && h.Ranks[0] == 14:
		h.Category = RoyalFlush
	case straight && flush:
		h.Category = StraightFlush
	case slices.Equal(pattern, []int{4, 1}):
		h.Category = FourOfAKind
	case slices.Equal(pattern, []int{3, 2}):
		h.Category = FullHouse
	case flush:
		h.Category = Flush
	case straight:
		h.Category = Straight
	case slices.Equal(pattern, []int{3, 1, 1}):
		h.Category = ThreeOfAKind
	case slices.Equal(pattern, []int{2, 2, 1}):
		h.Category = TwoPair
	case slices.Equal(pattern, []int{2, 1, 1, 1}):
		h.Category = Pair
	default:
		h.Category = HighCard
	}
	return h
}
