package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"honnef.co/go/spiro"
)

// config is the contents of a --config file. Missing keys keep their
// defaults.
type config struct {
	Solver struct {
		MaxIterations int     `toml:"max_iterations"`
		Tolerance     float64 `toml:"tolerance"`
	} `toml:"solver"`
	Emitter struct {
		// Zero disables subdivision, unlike in spiro.Options where it
		// selects the default.
		MaxDepth    int     `toml:"max_depth"`
		ErrorBudget float64 `toml:"error_budget"`
		Lines       bool    `toml:"lines"`
	} `toml:"emitter"`
	// Distance below which hit reports a hit, in drawing units.
	HitThreshold float64 `toml:"hit_threshold"`
}

const defaultHitThreshold = 7

func defaultConfig() config {
	var cfg config
	cfg.Solver.MaxIterations = spiro.DefaultOptions.MaxIterations
	cfg.Solver.Tolerance = spiro.DefaultOptions.Tolerance
	cfg.Emitter.MaxDepth = spiro.DefaultOptions.MaxDepth
	cfg.Emitter.ErrorBudget = spiro.DefaultOptions.ErrorBudget
	cfg.Emitter.Lines = spiro.DefaultOptions.Lines
	cfg.HitThreshold = defaultHitThreshold
	return cfg
}

func loadConfig(path string) (config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return config{}, err
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (config, error) {
	cfg := defaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.HitThreshold <= 0 {
		return config{}, fmt.Errorf("parsing config: hit_threshold must be positive, got %g", cfg.HitThreshold)
	}
	return cfg, nil
}

func (cfg config) options() *spiro.Options {
	depth := cfg.Emitter.MaxDepth
	if depth == 0 {
		depth = -1
	}
	o := spiro.DefaultOptions.
		WithMaxIterations(cfg.Solver.MaxIterations).
		WithTolerance(cfg.Solver.Tolerance).
		WithMaxDepth(depth).
		WithErrorBudget(cfg.Emitter.ErrorBudget).
		WithLines(cfg.Emitter.Lines)
	return &o
}
