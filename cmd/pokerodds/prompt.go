package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/internal/tui"
)

// PromptCmd asks for the simulation interactively and shows progress
type PromptCmd struct {
	Possibilities bool `short:"P" help:"Show how often the hero makes each hand category"`
}

func (c *PromptCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log)

	model := tui.NewPromptModel(equity.Config{
		Players: cfg.Simulation.Players,
		Trials:  cfg.Simulation.Trials,
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running prompt: %w", err)
	}
	simCfg, err := model.Config()
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	simCfg.Workers = cfg.Simulation.Workers
	simCfg.Seed = cfg.Simulation.Seed
	simCfg.Logger = logger

	ctx, cancel := signalContext(logger)
	defer cancel()

	res, err := tui.RunWithProgress(ctx, simCfg, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	displayResult(os.Stdout, simCfg, res, c.Possibilities)
	return nil
}
