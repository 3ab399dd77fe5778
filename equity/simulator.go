// Package equity estimates showdown equity by Monte Carlo simulation.
//
// Each trial reshuffles a deck with every fixed card excluded, deals the
// missing hole cards and board cards, and resolves the showdown from the
// point of view of player 0, the hero.
package equity

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerodds/internal/randutil"
	"github.com/lox/pokerodds/poker"
	"golang.org/x/sync/errgroup"
)

const (
	// MinPlayers and MaxPlayers bound the table size. 23 players plus a
	// full board is the most a 52 card deck can serve.
	MinPlayers = 2
	MaxPlayers = 23

	maxWorkers = 8
	// ctx is polled this often inside a worker's trial loop
	cancelCheckEvery = 256
)

// Trial is a single completed trial. Its slices belong to the worker that
// ran it and are only valid for the duration of the callback.
type Trial struct {
	N        int64 // 1-based completion order across all workers
	Worker   int
	Players  []poker.Player
	Board    []poker.Card
	Showdown poker.Showdown
}

// Config describes a simulation.
type Config struct {
	Players int
	Hands   [][2]poker.Card // fixed hole cards for players 0..len(Hands)-1
	Board   []poker.Card    // fixed board cards
	Trials  int

	// Workers defaults to the CPU count, capped at 8.
	Workers int
	// Seed makes results reproducible for a given worker count. Zero
	// seeds from the clock.
	Seed int64

	Clock  quartz.Clock
	Logger *log.Logger

	// OnTrial and OnProgress are called from worker goroutines and must
	// be safe for concurrent use when Workers > 1.
	OnTrial    func(Trial)
	OnProgress func(done, total int)
}

// Validate checks the configuration before any trial runs.
func (c Config) Validate() error {
	if c.Players < MinPlayers || c.Players > MaxPlayers {
		return fmt.Errorf("%d players (want %d-%d): %w", c.Players, MinPlayers, MaxPlayers, ErrInvalidPlayers)
	}
	if len(c.Hands) > c.Players {
		return fmt.Errorf("%d hands for %d players: %w", len(c.Hands), c.Players, ErrTooManyHands)
	}
	if len(c.Board) > poker.HandSize {
		return fmt.Errorf("%d board cards: %w", len(c.Board), ErrTooManyBoardCards)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%d trials: %w", c.Trials, ErrInvalidTrials)
	}

	var seen poker.CardSet
	check := func(card poker.Card) error {
		if !card.Valid() {
			return fmt.Errorf("%v: %w", card, ErrInvalidCard)
		}
		if seen.Contains(card) {
			return fmt.Errorf("%s: %w", card, ErrDuplicateCard)
		}
		seen.Add(card)
		return nil
	}
	for _, h := range c.Hands {
		for _, card := range h {
			if err := check(card); err != nil {
				return err
			}
		}
	}
	for _, card := range c.Board {
		if err := check(card); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), maxWorkers)
	}
	c.Workers = min(c.Workers, c.Trials)
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Seed == 0 {
		c.Seed = c.Clock.Now().UnixNano()
	}
	return c
}

// Run executes the simulation. If ctx is cancelled the trials completed
// so far are returned with Interrupted set and a nil error.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	logger := cfg.Logger.WithPrefix("equity")

	logger.Debug("Starting simulation",
		"players", cfg.Players,
		"fixed_hands", len(cfg.Hands),
		"board", poker.FormatCards(cfg.Board),
		"trials", cfg.Trials,
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	start := cfg.Clock.Now()

	// a seed and worker count always replay the same trials
	seeds := randutil.Split(cfg.Seed, cfg.Workers)
	workers := make([]*worker, cfg.Workers)
	per, extra := cfg.Trials/cfg.Workers, cfg.Trials%cfg.Workers
	for i := range workers {
		n := per
		if i < extra {
			n++
		}
		workers[i] = newWorker(i, &cfg, n, seeds[i])
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			return w.run(gctx, &done)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	res := newResult(cfg.Players, cfg.Seed)
	for _, w := range workers {
		res.merge(&w.result)
	}
	res.Elapsed = cfg.Clock.Since(start)
	res.Interrupted = ctx.Err() != nil && res.Trials < cfg.Trials

	logger.Debug("Simulation finished",
		"trials", res.Trials,
		"win_rate", fmt.Sprintf("%.2f%%", res.WinRate()),
		"elapsed", res.Elapsed,
		"interrupted", res.Interrupted)

	return res, nil
}

type worker struct {
	id     int
	cfg    *Config
	trials int

	deck    *poker.Deck
	fixed   []poker.Card
	players []poker.Player
	board   []poker.Card
	result  Result
}

func newWorker(id int, cfg *Config, trials int, seed int64) *worker {
	w := &worker{
		id:      id,
		cfg:     cfg,
		trials:  trials,
		deck:    poker.NewDeck(randutil.New(seed)),
		players: make([]poker.Player, cfg.Players),
		board:   make([]poker.Card, 0, poker.HandSize),
		result:  *newResult(cfg.Players, cfg.Seed),
	}
	for i, h := range cfg.Hands {
		w.players[i].Hole = h
		w.fixed = append(w.fixed, h[0], h[1])
	}
	w.players[0].Hero = true
	w.fixed = append(w.fixed, cfg.Board...)
	return w
}

func (w *worker) run(ctx context.Context, done *atomic.Int64) error {
	total := w.cfg.Trials
	progressEvery := int64(max(1, total/100))

	for i := range w.trials {
		if i%cancelCheckEvery == 0 && ctx.Err() != nil {
			return nil
		}

		s, err := w.trial()
		if err != nil {
			return fmt.Errorf("worker %d trial %d: %w", w.id, i, err)
		}
		w.result.record(w.players, s)

		n := done.Add(1)
		if w.cfg.OnTrial != nil {
			w.cfg.OnTrial(Trial{N: n, Worker: w.id, Players: w.players, Board: w.board, Showdown: s})
		}
		if w.cfg.OnProgress != nil && (n%progressEvery == 0 || n == int64(total)) {
			w.cfg.OnProgress(int(n), total)
		}
	}
	return nil
}

// trial deals one random completion of the fixed cards and resolves it.
func (w *worker) trial() (poker.Showdown, error) {
	w.deck.Shuffle(w.fixed...)

	for i := len(w.cfg.Hands); i < len(w.players); i++ {
		c1, err := w.deck.DealCard()
		if err != nil {
			return poker.Showdown{}, err
		}
		c2, err := w.deck.DealCard()
		if err != nil {
			return poker.Showdown{}, err
		}
		w.players[i].Hole = [2]poker.Card{c1, c2}
	}

	w.board = append(w.board[:0], w.cfg.Board...)
	for len(w.board) < poker.HandSize {
		c, err := w.deck.DealCard()
		if err != nil {
			return poker.Showdown{}, err
		}
		w.board = append(w.board, c)
	}

	return poker.Resolve(w.players, w.board)
}
