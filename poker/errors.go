package poker

import "errors"

var (
	// ErrDeckExhausted is returned when no dealable card remains in the deck.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrTooManyBoardCards is returned when more than five board cards are supplied.
	ErrTooManyBoardCards = errors.New("more than 5 board cards")
	// ErrNoHero is returned when no player is marked as the hero.
	ErrNoHero = errors.New("no hero player")
	// ErrMultipleHeroes is returned when more than one player is marked as the hero.
	ErrMultipleHeroes = errors.New("more than one hero player")
)
