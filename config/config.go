// Package config loads simulator defaults from the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/signalnine/biscuits/logging"
	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/simulation"
)

// Config holds the simulator settings. Command-line flags override it.
type Config struct {
	Trials int `env:"BISCUITS_TRIALS" envDefault:"100000"`
	// Seed is the harness seed in decimal or 0x hex. Empty means entropy.
	Seed       string   `env:"BISCUITS_SEED"`
	Workers    int      `env:"BISCUITS_WORKERS" envDefault:"0"`
	Parallel   int      `env:"BISCUITS_PARALLEL_STRATEGIES" envDefault:"1"`
	Rules      string   `env:"BISCUITS_RULES" envDefault:"biscuits"`
	Strategies []string `env:"BISCUITS_STRATEGIES" envSeparator:","`
	LogLevel   string   `env:"BISCUITS_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string   `env:"BISCUITS_LOG_FORMAT" envDefault:"console"`
	HistoryDB  string   `env:"BISCUITS_HISTORY_DB"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseSeed reads a seed in decimal or 0x-prefixed hex.
func ParseSeed(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}

// Validate returns a list of validation errors (empty = valid).
func (c Config) Validate() []ruleset.ValidationError {
	var errs []ruleset.ValidationError

	if c.Trials <= 0 {
		errs = append(errs, ruleset.ValidationError{Field: "trials", Message: fmt.Sprintf("must be positive, got %d", c.Trials)})
	}
	if c.Workers < 0 {
		errs = append(errs, ruleset.ValidationError{Field: "workers", Message: fmt.Sprintf("must not be negative, got %d", c.Workers)})
	}
	if c.Parallel < 0 {
		errs = append(errs, ruleset.ValidationError{Field: "parallel", Message: fmt.Sprintf("must not be negative, got %d", c.Parallel)})
	}
	if c.Seed != "" {
		if _, err := ParseSeed(c.Seed); err != nil {
			errs = append(errs, ruleset.ValidationError{Field: "seed", Message: fmt.Sprintf("not an unsigned 64-bit integer: %q", c.Seed)})
		}
	}
	if c.Rules == "" {
		errs = append(errs, ruleset.ValidationError{Field: "rules", Message: "must name a preset or rule set file"})
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, ruleset.ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)})
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, ruleset.ValidationError{Field: "log_format", Message: fmt.Sprintf("unknown format %q", c.LogFormat)})
	}

	return errs
}

// BatchOptions converts the config to harness options.
func (c Config) BatchOptions() (simulation.BatchOptions, error) {
	if err := ruleset.NewConfigError(c.Validate()); err != nil {
		return simulation.BatchOptions{}, err
	}
	opts := simulation.BatchOptions{
		Options:  simulation.Options{Trials: c.Trials, Workers: c.Workers},
		Parallel: c.Parallel,
	}
	if c.Seed != "" {
		seed, _ := ParseSeed(c.Seed)
		opts.Seed, opts.Seeded = seed, true
	}
	return opts, nil
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Format = c.LogFormat
	return cfg
}
