package poker

import "slices"

// HandSize is the number of cards in a made hand.
const HandSize = 5

// Evaluator finds the best HandSize cards of one category, strongest
// first, or returns nil when the category is absent. Inputs with fewer
// than HandSize cards always yield nil.
type Evaluator func(cards []Card) []Card

// EvalHighCard returns the five highest cards.
func EvalHighCard(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}
	return slices.Clip(SortCards(cards, ByRank)[:HandSize])
}

// EvalPair returns the highest pair plus three kickers.
func EvalPair(cards []Card) []Card {
	return ofAKind(cards, 2)
}

// EvalThreeOfAKind returns the highest trips plus two kickers.
func EvalThreeOfAKind(cards []Card) []Card {
	return ofAKind(cards, 3)
}

// EvalFourOfAKind returns the quads plus one kicker.
func EvalFourOfAKind(cards []Card) []Card {
	return ofAKind(cards, 4)
}

// EvalTwoPair returns the two highest pairs of different ranks plus a kicker.
func EvalTwoPair(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}
	sorted := SortCards(cards, ByRank)
	high := findGroup(sorted, 2, 0)
	if high < 0 {
		return nil
	}
	skip := rankBit(sorted[high].Rank)
	low := findGroup(sorted, 2, skip)
	if low < 0 {
		return nil
	}
	skip |= rankBit(sorted[low].Rank)

	used := make([]bool, len(sorted))
	hand := make([]Card, 0, HandSize)
	hand = take(hand, sorted, used, high, 2)
	hand = take(hand, sorted, used, low, 2)
	return appendKickers(hand, sorted, used, skip)
}

// EvalFullHouse returns the highest trips plus the highest pair of another rank.
func EvalFullHouse(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}
	sorted := SortCards(cards, ByRank)
	trips := findGroup(sorted, 3, 0)
	if trips < 0 {
		return nil
	}
	pair := findGroup(sorted, 2, rankBit(sorted[trips].Rank))
	if pair < 0 {
		return nil
	}

	used := make([]bool, len(sorted))
	hand := make([]Card, 0, HandSize)
	hand = take(hand, sorted, used, trips, 3)
	return take(hand, sorted, used, pair, 2)
}

// EvalStraight returns the highest run of five consecutive ranks. An ace
// counts both below the deuce and above the king, so the wheel (A-2-3-4-5)
// and broadway (T-J-Q-K-A) are both found, but K-A-2-3-4 is not.
func EvalStraight(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}

	// slot 0 is the low ace, 1..12 are deuce..king, 13 is the high ace
	var (
		present [NumRanks + 1]bool
		slot    [NumRanks + 1]Card
	)
	for _, c := range SortCards(cards, ByRank) {
		s := int(c.Rank)
		if !present[s] {
			present[s], slot[s] = true, c
		}
		if c.Rank == Ace && !present[NumRanks] {
			present[NumRanks], slot[NumRanks] = true, c
		}
	}

	top, run := -1, 0
	for s := range present {
		if !present[s] {
			run = 0
			continue
		}
		run++
		if run >= HandSize {
			top = s
		}
	}
	if top < 0 {
		return nil
	}

	hand := make([]Card, HandSize)
	for i := range hand {
		hand[i] = slot[top-i]
	}
	return hand
}

// EvalFlush returns the five highest cards of a suit holding at least
// five cards. When several suits qualify the strongest flush wins, then
// the higher suit.
func EvalFlush(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}
	sorted := SortCards(cards, BySuit)

	var best []Card
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Suit == sorted[i].Suit {
			j++
		}
		if j-i >= HandSize {
			candidate := sorted[i : i+HandSize : i+HandSize]
			if best == nil || compareCards(candidate, best) > 0 {
				best = candidate
			}
		}
		i = j
	}
	return best
}

// EvalStraightFlush restricts the input to each suit holding at least
// five cards and looks for a straight within it.
func EvalStraightFlush(cards []Card) []Card {
	if len(cards) < HandSize {
		return nil
	}

	var bySuit [NumSuits][]Card
	for _, c := range cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	var best []Card
	for s := NumSuits - 1; s >= 0; s-- {
		if len(bySuit[s]) < HandSize {
			continue
		}
		if hand := EvalStraight(bySuit[s]); hand != nil && (best == nil || compareCards(hand, best) > 0) {
			best = hand
		}
	}
	return best
}

func ofAKind(cards []Card, k int) []Card {
	if len(cards) < HandSize {
		return nil
	}
	sorted := SortCards(cards, ByRank)
	start := findGroup(sorted, k, 0)
	if start < 0 {
		return nil
	}

	used := make([]bool, len(sorted))
	hand := make([]Card, 0, HandSize)
	hand = take(hand, sorted, used, start, k)
	return appendKickers(hand, sorted, used, rankBit(sorted[start].Rank))
}

// rankMask has one bit per Rank.
type rankMask uint16

func rankBit(r Rank) rankMask {
	return 1 << r
}

func (m rankMask) has(r Rank) bool {
	return m&rankBit(r) != 0
}

// findGroup returns the index of the first (highest) run of at least k
// equal ranks in rank-sorted cards, ignoring ranks in skip, or -1.
func findGroup(sorted []Card, k int, skip rankMask) int {
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].Rank == sorted[i].Rank {
			j++
		}
		if j-i >= k && !skip.has(sorted[i].Rank) {
			return i
		}
		i = j
	}
	return -1
}

func take(hand, sorted []Card, used []bool, start, k int) []Card {
	for i := start; i < start+k; i++ {
		hand = append(hand, sorted[i])
		used[i] = true
	}
	return hand
}

// appendKickers fills hand up to HandSize from rank-sorted cards. Kickers
// are the highest cards of distinct ranks outside skip; only when those
// run out are the highest unused cards of any rank taken.
func appendKickers(hand, sorted []Card, used []bool, skip rankMask) []Card {
	base := len(hand)
	seen := skip
	for i, c := range sorted {
		if len(hand) == HandSize {
			break
		}
		if used[i] || seen.has(c.Rank) {
			continue
		}
		hand = append(hand, c)
		used[i] = true
		seen |= rankBit(c.Rank)
	}
	for i, c := range sorted {
		if len(hand) == HandSize {
			break
		}
		if !used[i] {
			hand = append(hand, c)
			used[i] = true
		}
	}
	slices.SortStableFunc(hand[base:], func(a, b Card) int {
		return ByRank.Compare(b, a)
	})
	return hand
}

// compareCards compares two card sequences position by position using
// ace-high values.
func compareCards(a, b []Card) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if av, bv := a[i].Value(), b[i].Value(); av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
