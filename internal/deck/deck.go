package deck

import (
	"errors"
	rand "math/rand/v2"
	"slices"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is the set of undrawn cards. A standard deck draws uniformly at
// random without replacement; a stacked deck deals its cards in order.
type Deck struct {
	cards   []Card
	rng     *rand.Rand
	stacked []Card // non-nil for stacked decks
}

// NewDeck creates a full 52-card deck drawing from rng
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewStacked creates a deck that deals the given cards in order. It is
// used to set up deterministic hands in tests.
func NewStacked(cards ...Card) *Deck {
	d := &Deck{stacked: slices.Clone(cards)}
	d.Reset()
	return d
}

// Standard returns the 52 cards of a fresh deck in suit-major order.
func Standard() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Draw removes and returns one card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	if d.stacked != nil {
		card := d.cards[0]
		d.cards = d.cards[1:]
		return card, nil
	}

	i := d.rng.IntN(len(d.cards))
	card := d.cards[i]
	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

// DrawN draws n cards, failing without partial results if fewer remain.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	cards := make([]Card, n)
	for i := range cards {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

// Remaining returns the number of undrawn cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Contains reports whether c is still undrawn.
func (d *Deck) Contains(c Card) bool {
	return slices.Contains(d.cards, c)
}

// Cards returns a copy of the undrawn cards.
func (d *Deck) Cards() []Card {
	return slices.Clone(d.cards)
}

// Reset returns every drawn card to the deck
func (d *Deck) Reset() {
	if d.stacked != nil {
		d.cards = slices.Clone(d.stacked)
		return
	}
	d.cards = append(d.cards[:0], Standard()...)
}
