package poker

import (
	"testing"
)

func TestCategorizeHoleCards(t *testing.T) {
	tests := []struct {
		name     string
		card1    string
		card2    string
		expected HoleCardCategory
	}{
		// Premium hands
		{"Pocket Aces", "As", "Ah", CategoryPremium},
		{"Pocket Kings", "Kh", "Kd", CategoryPremium},
		{"Pocket Jacks", "Jh", "Jd", CategoryPremium},
		{"Ace King offsuit", "Ac", "Kh", CategoryPremium},

		// Strong hands
		{"Pocket Tens", "Tc", "Th", CategoryStrong},
		{"Ace Queen suited", "As", "Qs", CategoryStrong},
		{"Ace Jack offsuit", "Ad", "Jc", CategoryStrong},

		// Medium hands
		{"Pocket Nines", "9c", "9h", CategoryMedium},
		{"Pocket Sevens", "7h", "7c", CategoryMedium},
		{"King Queen suited", "Ks", "Qs", CategoryMedium},
		{"Queen Jack suited", "Qd", "Jd", CategoryMedium},

		// Weak hands
		{"Pocket Sixes", "6c", "6h", CategoryWeak},
		{"Pocket Twos", "2c", "2h", CategoryWeak},
		{"Suited connectors 76s", "7h", "6h", CategoryWeak},
		{"Suited connectors 54s", "5d", "4d", CategoryWeak},

		// Trash hands
		{"Seven Two offsuit", "7c", "2h", CategoryTrash},
		{"Nine Three offsuit", "9d", "3s", CategoryTrash},
		{"Jack Four offsuit", "Jh", "4c", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card1, err1 := ParseCard(tt.card1)
			card2, err2 := ParseCard(tt.card2)
			if err1 != nil || err2 != nil {
				t.Fatalf("Failed to parse cards: %v, %v", err1, err2)
			}

			result := CategorizeHoleCards(card1, card2)
			if result != tt.expected {
				t.Errorf("CategorizeHoleCards(%s, %s) = %s, want %s",
					tt.card1, tt.card2, result, tt.expected)
			}
		})
	}
}

func TestCategorizeHoleCardsInvalid(t *testing.T) {
	if got := CategorizeHoleCards(Card{Rank: 20}, NewCard(Ace, Spades)); got != CategoryUnknown {
		t.Errorf("expected Unknown for invalid card, got %s", got)
	}
}
