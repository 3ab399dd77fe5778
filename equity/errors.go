package equity

import "errors"

var (
	ErrInvalidPlayers    = errors.New("player count out of range")
	ErrTooManyHands      = errors.New("more fixed hands than players")
	ErrTooManyBoardCards = errors.New("more than 5 board cards")
	ErrInvalidTrials     = errors.New("trial count must be positive")
	ErrDuplicateCard     = errors.New("card used more than once")
	ErrInvalidCard       = errors.New("invalid card")
)
