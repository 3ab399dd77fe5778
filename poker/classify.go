package poker

import "strings"

// Hand is a classified hand: its category and best five cards, strongest first.
type Hand struct {
	Category Category
	Cards    []Card
}

// String returns a string representation of the hand
func (h Hand) String() string {
	var b strings.Builder
	b.WriteString(h.Category.String())
	b.WriteString(" [")
	b.WriteString(FormatCards(h.Cards))
	b.WriteString("]")
	return b.String()
}

// CompareHands returns -1 if a is weaker than b, 0 if they are equal in
// strength and 1 if a is stronger. Categories decide first, then the best
// five cards position by position with aces high.
func CompareHands(a, b Hand) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	return compareCards(a.Cards, b.Cards)
}

type categoryEvaluator struct {
	category Category
	eval     Evaluator
}

// evaluators is tried strongest first; the first match decides the
// category, so a hand holding two pair is never reported as a pair.
var evaluators = [...]categoryEvaluator{
	{StraightFlush, EvalStraightFlush},
	{FourOfAKind, EvalFourOfAKind},
	{FullHouse, EvalFullHouse},
	{Flush, EvalFlush},
	{Straight, EvalStraight},
	{ThreeOfAKind, EvalThreeOfAKind},
	{TwoPair, EvalTwoPair},
	{Pair, EvalPair},
	{HighCard, EvalHighCard},
}

// Classify finds the best category and best five cards among cards. It
// returns false when fewer than five cards are given.
func Classify(cards []Card) (Hand, bool) {
	for _, e := range evaluators {
		if best := e.eval(cards); len(best) > 0 {
			return Hand{Category: e.category, Cards: best}, true
		}
	}
	return Hand{}, false
}

// Evaluator returns the evaluator for a category.
func (c Category) Evaluator() Evaluator {
	for _, e := range evaluators {
		if e.category == c {
			return e.eval
		}
	}
	return nil
}
