package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete pokerodds configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// SimulationSettings are the defaults for calc and prompt runs
type SimulationSettings struct {
	Players int   `hcl:"players,optional"`
	Trials  int   `hcl:"trials,optional"`
	Workers int   `hcl:"workers,optional"`
	Seed    int64 `hcl:"seed,optional"`
}

// ServerSettings configures the websocket equity service
type ServerSettings struct {
	Address          string `hcl:"address,optional"`
	Port             int    `hcl:"port,optional"`
	MaxTrials        int    `hcl:"max_trials,optional"`
	ProgressInterval string `hcl:"progress_interval,optional"`
	MaxConcurrent    int    `hcl:"max_concurrent,optional"`
}

// LogSettings controls the logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

const (
	defaultPlayers          = 2
	defaultTrials           = 100000
	defaultAddress          = "localhost"
	defaultPort             = 8080
	defaultMaxTrials        = 1000000
	defaultProgressInterval = "250ms"
	defaultMaxConcurrent    = 4
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
)

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}

	if c.Simulation.Players == 0 {
		c.Simulation.Players = defaultPlayers
	}
	if c.Simulation.Trials == 0 {
		c.Simulation.Trials = defaultTrials
	}

	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.MaxTrials == 0 {
		c.Server.MaxTrials = defaultMaxTrials
	}
	if c.Server.ProgressInterval == "" {
		c.Server.ProgressInterval = defaultProgressInterval
	}
	if c.Server.MaxConcurrent == 0 {
		c.Server.MaxConcurrent = defaultMaxConcurrent
	}

	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Players < 2 || c.Simulation.Players > 23 {
		return fmt.Errorf("simulation: players must be between 2 and 23, got %d", c.Simulation.Players)
	}
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("simulation: trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative, got %d", c.Simulation.Workers)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	if c.Server.MaxTrials <= 0 {
		return fmt.Errorf("server: max_trials must be positive, got %d", c.Server.MaxTrials)
	}
	if c.Server.MaxConcurrent <= 0 {
		return fmt.Errorf("server: max_concurrent must be positive, got %d", c.Server.MaxConcurrent)
	}
	if d, err := time.ParseDuration(c.Server.ProgressInterval); err != nil || d <= 0 {
		return fmt.Errorf("server: invalid progress_interval %q", c.Server.ProgressInterval)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if _, err := c.Log.Formatter(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Interval returns the parsed progress interval. Call after Validate.
func (s *ServerSettings) Interval() time.Duration {
	d, _ := time.ParseDuration(s.ProgressInterval)
	return d
}

// Formatter maps the format name onto a charmbracelet/log formatter.
func (l *LogSettings) Formatter() (log.Formatter, error) {
	switch l.Format {
	case "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("unknown log format %q", l.Format)
	}
}
