package poker

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Rank is a card rank. Ace has the lowest ordinal; Value promotes it to
// the top when hands are compared.
type Rank uint8

// Suit is a card suit. Suits carry no strength, they only group cards.
type Suit uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	// NumRanks is the number of distinct ranks.
	NumRanks = 13
	// NumSuits is the number of distinct suits.
	NumSuits = 4
	// DeckSize is the number of cards in a standard deck.
	DeckSize = NumRanks * NumSuits
)

const (
	rankChars = "A23456789TJQK"
	suitChars = "cdhs"
)

// Value returns the ace-high strength of the rank: 13 for an ace,
// otherwise the rank ordinal.
func (r Rank) Value() int {
	if r == Ace {
		return NumRanks
	}
	return int(r)
}

func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return rankChars[r : r+1]
}

func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitChars[s : s+1]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is an immutable (rank, suit) pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value is shorthand for c.Rank.Value().
func (c Card) Value() int {
	return c.Rank.Value()
}

// Index maps the card onto 0..51 in canonical (suit, rank) order.
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank)
}

// Valid reports whether rank and suit are in range.
func (c Card) Valid() bool {
	return c.Rank < NumRanks && c.Suit < NumSuits
}

// String renders the card as rank then suit, e.g. "As" or "Tc".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses a two character card such as "As", "td" or "9H".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: must be 2 characters", s)
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a run of card notation such as "AsKs QsJs". Whitespace
// between cards is ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func parseRank(c byte) (Rank, error) {
	if i := strings.IndexByte(rankChars, upper(c)); i >= 0 {
		return Rank(i), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	if i := strings.IndexByte(suitChars, lower(c)); i >= 0 {
		return Suit(i), nil
	}
	return 0, fmt.Errorf("unknown suit '%c'", c)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// Ordering selects how cards are compared when sorting.
type Ordering uint8

const (
	// BySuit groups cards by suit, then by ace-high rank. Used by flush scans.
	BySuit Ordering = iota
	// ByRank orders by ace-high rank, then suit. Used by pair, kind and
	// straight scans.
	ByRank
)

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
func (o Ordering) Compare(a, b Card) int {
	switch o {
	case BySuit:
		if a.Suit != b.Suit {
			return cmp.Compare(int(a.Suit), int(b.Suit))
		}
		return cmp.Compare(a.Value(), b.Value())
	default:
		if av, bv := a.Value(), b.Value(); av != bv {
			return cmp.Compare(av, bv)
		}
		return cmp.Compare(int(a.Suit), int(b.Suit))
	}
}

// Less reports whether a orders strictly before b.
func (o Ordering) Less(a, b Card) bool {
	return o.Compare(a, b) < 0
}

// SortCards returns a copy of cards sorted strongest first under o.
// The input is never modified.
func SortCards(cards []Card, o Ordering) []Card {
	sorted := slices.Clone(cards)
	slices.SortFunc(sorted, func(a, b Card) int {
		return o.Compare(b, a)
	})
	return sorted
}

// CardSet is a bitset over the 52 cards, one bit per Card.Index.
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.Index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.Index()) != 0
}

// Len returns the number of cards in the set.
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}
