package poker

import (
	"testing"

	"github.com/lox/pokerodds/internal/randutil"
	ref "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPrecedence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category Category
		best     string
	}{
		{"two pair beats pair", "Ah Ad Kc Ks Qh 3d 2c", TwoPair, "Ah Ad Ks Kc Qh"},
		{"straight beats trips", "7c 7d 7h 8s 9c Td Jh", Straight, "Jh Td 9c 8s 7h"},
		{"flush beats straight", "4h 5h 6h 9h Kh 7c 8d", Flush, "Kh 9h 6h 5h 4h"},
		{"full house beats flush", "Kh Kd Ks 9h 9d 2h 5h 7h", FullHouse, "Ks Kh Kd 9h 9d"},
		{"quads beat full house", "9c 9d 9h 9s Kc Kd 2h", FourOfAKind, "9s 9h 9d 9c Kd"},
		{"straight flush beats quads", "5s 6s 7s 8s 9s 9c 9d 9h", StraightFlush, "9s 8s 7s 6s 5s"},
		{"quads with ace kicker", "Kh Ks Kd Kc 3h As 3c 2h", FourOfAKind, "Ks Kh Kd Kc As"},
		{"high card", "As Jd 9h 7c 4s 3d 2h", HighCard, "As Jd 9h 7c 4s"},
		{"five card pair", "7c 7d Ah 4s 2d", Pair, "7d 7c Ah 4s 2d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand, ok := Classify(MustParseCards(tt.cards))
			require.True(t, ok)
			assert.Equal(t, tt.category, hand.Category)
			assert.Equal(t, tt.best, FormatCards(hand.Cards))
		})
	}
}

func TestClassifyTooFewCards(t *testing.T) {
	t.Parallel()
	_, ok := Classify(MustParseCards("As Ad Ac Ah"))
	assert.False(t, ok)
}

func TestCategoryOrder(t *testing.T) {
	t.Parallel()
	for i := 1; i < NumCategories; i++ {
		assert.Less(t, Categories[i-1], Categories[i])
	}
	// evaluator table runs strongest first
	for i := 1; i < len(evaluators); i++ {
		assert.Greater(t, evaluators[i-1].category, evaluators[i].category)
	}
	for _, c := range Categories {
		assert.NotNil(t, c.Evaluator(), "no evaluator for %s", c)
		assert.NotEqual(t, "Unknown", c.String())
	}
}

func TestClassifyRandomHandsAreSubsets(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	deck := NewDeck(rng)

	for i := 0; i < 5000; i++ {
		deck.Shuffle()
		cards, err := deck.Deal(7)
		require.NoError(t, err)

		hand, ok := Classify(cards)
		require.True(t, ok)
		require.Len(t, hand.Cards, HandSize)

		input := NewCardSet(cards...)
		picked := NewCardSet(hand.Cards...)
		require.Equal(t, HandSize, picked.Len(), "duplicate card in %s", hand)
		for _, c := range hand.Cards {
			require.True(t, input.Contains(c), "%s not in input %s", c, FormatCards(cards))
		}
		require.NotEmpty(t, hand.Category.Evaluator()(cards))
	}
}

// refCard converts to github.com/paulhankin/poker, which numbers ranks
// 1 (ace) to 13 (king).
func refCard(t *testing.T, c Card) ref.Card {
	t.Helper()
	suits := [NumSuits]ref.Suit{ref.Club, ref.Diamond, ref.Heart, ref.Spade}
	card, err := ref.MakeCard(suits[c.Suit], ref.Rank(int(c.Rank)+1))
	require.NoError(t, err)
	return card
}

func refEval(t *testing.T, cards []Card) int16 {
	t.Helper()
	var seven [7]ref.Card
	for i, c := range cards {
		seven[i] = refCard(t, c)
	}
	return ref.Eval7(&seven)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompareHandsMatchesReferenceEvaluator(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	deck := NewDeck(rng)

	ties := 0
	for i := 0; i < 20000; i++ {
		deck.Shuffle()
		dealt, err := deck.Deal(9)
		require.NoError(t, err)

		board := dealt[:5]
		a := append([]Card{dealt[5], dealt[6]}, board...)
		b := append([]Card{dealt[7], dealt[8]}, board...)

		ha, ok := Classify(a)
		require.True(t, ok)
		hb, ok := Classify(b)
		require.True(t, ok)

		got := CompareHands(ha, hb)
		want := sign(int(refEval(t, a)) - int(refEval(t, b)))
		require.Equal(t, want, got, "%s vs %s (board %s)", ha, hb, FormatCards(board))
		if got == 0 {
			ties++
		}
	}
	assert.Positive(t, ties, "expected some split pots in 20000 deals")
}

func BenchmarkClassify7(b *testing.B) {
	cards := MustParseCards("As Kd 9h 9c 4s 3d 2h")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Classify(cards)
	}
}
