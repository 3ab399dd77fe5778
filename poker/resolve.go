package poker

import (
	"fmt"
	"slices"
)

// Outcome is the hero's result in a showdown.
type Outcome uint8

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Loss:
		return "loss"
	case Draw:
		return "draw"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// Player holds two hole cards and the hand they made at the last showdown.
type Player struct {
	Hole [2]Card
	Best Hand
	Hero bool
}

// NewPlayer creates a player from two hole cards.
func NewPlayer(c1, c2 Card) Player {
	return Player{Hole: [2]Card{c1, c2}}
}

// Showdown is the result of comparing every player's hand.
type Showdown struct {
	Outcome  Outcome  // hero result
	Category Category // strongest category at the table
	Winners  []int    // indices of the players sharing the strongest hand
	Hero     int      // index of the hero
}

// Resolve classifies every player against the board and reports the
// hero's outcome. Each player's Best is overwritten.
func Resolve(players []Player, board []Card) (Showdown, error) {
	if len(board) > HandSize {
		return Showdown{}, fmt.Errorf("resolve with %d board cards: %w", len(board), ErrTooManyBoardCards)
	}
	hero := -1
	for i := range players {
		if !players[i].Hero {
			continue
		}
		if hero >= 0 {
			return Showdown{}, ErrMultipleHeroes
		}
		hero = i
	}
	if hero < 0 {
		return Showdown{}, ErrNoHero
	}

	// board first, the last two slots take each player's hole cards in turn
	var workspace [HandSize + 2]Card
	n := copy(workspace[:], board)
	cards := workspace[:n+2]

	top := HighCard
	contenders := make([]int, 0, len(players))
	for i := range players {
		cards[n], cards[n+1] = players[i].Hole[0], players[i].Hole[1]
		best, ok := Classify(cards)
		if !ok {
			best = Hand{Category: HighCard, Cards: SortCards(cards, ByRank)}
		}
		players[i].Best = best

		switch {
		case best.Category > top:
			top = best.Category
			contenders = append(contenders[:0], i)
		case best.Category == top:
			contenders = append(contenders, i)
		}
	}

	slices.SortStableFunc(contenders, func(a, b int) int {
		return compareCards(players[a].Best.Cards, players[b].Best.Cards)
	})

	strongest := contenders[len(contenders)-1]
	winners := []int{strongest}
	for i := len(contenders) - 2; i >= 0; i-- {
		if compareCards(players[contenders[i]].Best.Cards, players[strongest].Best.Cards) != 0 {
			break
		}
		winners = append(winners, contenders[i])
	}
	slices.Sort(winners)

	s := Showdown{Outcome: Loss, Category: top, Winners: winners, Hero: hero}
	if slices.Contains(winners, hero) {
		s.Outcome = Win
		if len(winners) > 1 {
			s.Outcome = Draw
		}
	}
	return s, nil
}
