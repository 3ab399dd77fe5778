package main

import (
	"os"

	"github.com/coder/quartz"
	"github.com/lox/pokerodds/internal/server"
)

// ServeCmd runs the websocket equity service
type ServeCmd struct {
	Addr      string `help:"Listen address, host:port (overrides config)"`
	MaxTrials int    `help:"Largest trial count a request may ask for (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.MaxTrials > 0 {
		cfg.Server.MaxTrials = c.MaxTrials
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log)

	addr := cfg.Address()
	if c.Addr != "" {
		addr = c.Addr
	}

	srv := server.NewServer(server.Options{
		Addr:             addr,
		MaxTrials:        cfg.Server.MaxTrials,
		MaxConcurrent:    cfg.Server.MaxConcurrent,
		ProgressInterval: cfg.Server.Interval(),
		Workers:          cfg.Simulation.Workers,
	}, logger.WithPrefix("server"), quartz.NewReal())

	ctx, cancel := signalContext(logger)
	defer cancel()

	return srv.ListenAndServe(ctx)
}
