package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pokerodds/internal/config"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command
type Globals struct {
	Config    string `short:"c" default:"pokerodds.hcl" help:"Path to HCL configuration file"`
	LogLevel  string `short:"l" help:"Log level (overrides config)"`
	LogFormat string `help:"Log format: text, json or logfmt (overrides config)"`
	NoColor   bool   `help:"Disable coloured output"`
}

// load reads the config file and applies flag overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return cfg, nil
}

// newLogger builds a logger from validated log settings
func newLogger(w io.Writer, settings *config.LogSettings) *log.Logger {
	level, err := log.ParseLevel(settings.Level)
	if err != nil {
		level = log.InfoLevel
	}
	formatter, err := settings.Formatter()
	if err != nil {
		formatter = log.TextFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Formatter:       formatter,
		Prefix:          "pokerodds",
	})
}

// signalContext is cancelled on interrupt or SIGTERM
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, stopping", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
