package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/internal/config"
	"github.com/lox/pokerodds/poker"
)

// CalcCmd runs a simulation from flags
type CalcCmd struct {
	Hands         []string `arg:"" optional:"" help:"Fixed hands, hero first, e.g. 'AcKd QhJs'"`
	Board         string   `short:"b" help:"Board cards (e.g., 'Td7s8h')"`
	Players       int      `short:"p" help:"Number of players (defaults to config, at least the number of hands)"`
	Trials        int      `short:"n" help:"Number of Monte Carlo trials (overrides config)"`
	Workers       int      `short:"w" help:"Worker goroutines (overrides config)"`
	Seed          *int64   `help:"Random seed for reproducible results"`
	Possibilities bool     `short:"P" help:"Show how often the hero makes each hand category"`
	Show          int      `help:"Print the first N trials"`
}

func (c *CalcCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log)

	simCfg, err := c.simulation(cfg.Simulation)
	if err != nil {
		return err
	}
	simCfg.Logger = logger

	var trials *trialLog
	if c.Show > 0 {
		trials = newTrialLog(c.Show)
		simCfg.OnTrial = trials.record
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	res, err := equity.Run(ctx, simCfg)
	if err != nil {
		return err
	}

	if trials != nil {
		trials.write(os.Stdout)
	}
	displayResult(os.Stdout, simCfg, res, c.Possibilities)
	return nil
}

// simulation merges flags over the configured defaults
func (c *CalcCmd) simulation(defaults *config.SimulationSettings) (equity.Config, error) {
	hands, err := parseHands(c.Hands)
	if err != nil {
		return equity.Config{}, err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return equity.Config{}, fmt.Errorf("board: %w", err)
	}

	cfg := equity.Config{
		Players: defaults.Players,
		Hands:   hands,
		Board:   board,
		Trials:  defaults.Trials,
		Workers: defaults.Workers,
		Seed:    defaults.Seed,
	}
	if c.Players > 0 {
		cfg.Players = c.Players
	} else if len(hands) > cfg.Players {
		cfg.Players = len(hands)
	}
	if c.Trials > 0 {
		cfg.Trials = c.Trials
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	return cfg, cfg.Validate()
}

func parseHands(handStrings []string) ([][2]poker.Card, error) {
	var hands [][2]poker.Card
	for i, handStr := range handStrings {
		hand, err := poker.ParseCards(handStr)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, [2]poker.Card{hand[0], hand[1]})
	}
	return hands, nil
}

// trialLog keeps a text rendering of the first few trials. Trials arrive
// from several workers at once.
type trialLog struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newTrialLog(limit int) *trialLog {
	return &trialLog{limit: limit}
}

func (l *trialLog) record(tr equity.Trial) {
	if tr.N > int64(l.limit) {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "#%d board %s\n", tr.N, poker.FormatCards(tr.Board))
	for i, p := range tr.Players {
		marker := " "
		for _, w := range tr.Showdown.Winners {
			if w == i {
				marker = "*"
			}
		}
		fmt.Fprintf(&b, "  %s seat %d  %s  %s\n", marker, i+1, poker.FormatCards(p.Hole[:]), p.Best)
	}
	fmt.Fprintf(&b, "  hero %s\n", tr.Showdown.Outcome)

	l.mu.Lock()
	l.lines = append(l.lines, b.String())
	l.mu.Unlock()
}

func (l *trialLog) write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		fmt.Fprint(w, line)
	}
	if len(l.lines) > 0 {
		fmt.Fprintln(w)
	}
}
