package selfplay

import (
	"errors"
	"fmt"

	"alphazero/searcher"
)

var ErrInvalidConfig = errors.New("invalid self-play config")

type Config struct {
	Simulations int     // simulations per move, at least 1
	Exploration float64 // PUCT exploration constant
	Temperature float64
	// EndgameTemperature replaces Temperature from move TemperatureCutoff on.
	// A negative cutoff keeps Temperature for the whole episode.
	EndgameTemperature float64
	TemperatureCutoff  int
	// Root exploration noise, applied at the first move only. A zero weight disables it.
	DirichletAlpha float64
	NoiseWeight    float64
}

func DefaultConfig() Config {
	return Config{
		Simulations:        100,
		Exploration:        searcher.DefaultExploration,
		Temperature:        1,
		EndgameTemperature: 0,
		TemperatureCutoff:  -1,
		DirichletAlpha:     1,
		NoiseWeight:        0.25,
	}
}

func (c Config) Validate() error {
	if c.Simulations < 1 {
		return fmt.Errorf("%w: simulations must be positive, got %d", ErrInvalidConfig, c.Simulations)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("%w: exploration must not be negative, got %v", ErrInvalidConfig, c.Exploration)
	}
	if c.NoiseWeight < 0 || c.NoiseWeight > 1 {
		return fmt.Errorf("%w: noise weight must be in [0, 1], got %v", ErrInvalidConfig, c.NoiseWeight)
	}
	if c.NoiseWeight > 0 && c.DirichletAlpha <= 0 {
		return fmt.Errorf("%w: dirichlet alpha must be positive, got %v", ErrInvalidConfig, c.DirichletAlpha)
	}
	return nil
}
