package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck represents a standard 52-card deck
type Deck struct {
	cards   [DeckSize]Card // Fixed size array
	next    int
	exclude CardSet
	rng     *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a deck in canonical (suit, rank) order. A nil rng uses
// the process-wide math/rand/v2 source.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for suit := range Suit(NumSuits) {
		for rank := range Rank(NumRanks) {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// Shuffle permutes all 52 cards using Fisher-Yates, rewinds the deal
// cursor and replaces the exclusion set. Excluded cards stay in the deck
// but are never dealt until the next Shuffle.
func (d *Deck) Shuffle(exclude ...Card) {
	d.next = 0
	d.exclude = NewCardSet(exclude...)
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealCard deals the next card that is not excluded.
func (d *Deck) DealCard() (Card, error) {
	for d.next < len(d.cards) {
		card := d.cards[d.next]
		d.next++
		if !d.exclude.Contains(card) {
			return card, nil
		}
	}
	return Card{}, ErrDeckExhausted
}

// Deal deals n cards from the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > d.Remaining() {
		return nil, fmt.Errorf("deal %d cards with %d remaining: %w", n, d.Remaining(), ErrDeckExhausted)
	}
	cards := make([]Card, n)
	for i := range cards {
		card, err := d.DealCard()
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

// Cards returns a copy of the deck in its current order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards[:])
	return out
}

// Remaining returns the number of undealt cards that are not excluded.
func (d *Deck) Remaining() int {
	n := 0
	for _, card := range d.cards[d.next:] {
		if !d.exclude.Contains(card) {
			n++
		}
	}
	return n
}
