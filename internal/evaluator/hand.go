package evaluator

import (
	"fmt"

	"github.com/lox/casino/internal/deck"
)

// Category is the class of a five card poker hand. Higher values beat
// lower ones.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Hand is the best five card hand found in a pool.
type Hand struct {
	Category Category
	// Cards are ordered to line up with Ranks.
	Cards [5]deck.Card
	// Ranks are the card ranks sorted descending, with the ace of a
	// wheel straight counted as 1.
	Ranks [5]int
}

// String returns e.g. "Royal Flush (A♠ K♠ Q♠ J♠ T♠)"
func (h Hand) String() string {
	return fmt.Sprintf("%s (%s)", h.Category, deck.FormatCards(h.Cards[:]))
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a tie.
// Hands are ordered by category, then by their descending rank vectors
// compared lexicographically.
func Compare(a, b Hand) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := range a.Ranks {
		if a.Ranks[i] != b.Ranks[i] {
			if a.Ranks[i] > b.Ranks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
