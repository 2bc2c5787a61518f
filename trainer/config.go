package trainer

import (
	"errors"
	"fmt"

	"alphazero/searcher"
	"alphazero/selfplay"
)

var ErrInvalidConfig = errors.New("invalid trainer config")

type Config struct {
	Games          int // self-play episodes per cycle
	Workers        int // concurrent episodes; 1 or less plays them sequentially
	Updates        int // training steps per cycle
	BufferCapacity int // 0 keeps every example
	// Rollout searches with random playouts instead of the learner's predictions.
	Rollout      bool
	RolloutPrior searcher.RolloutPrior
	Seed         uint64
	SelfPlay     selfplay.Config
}

func DefaultConfig() Config {
	return Config{
		Games:          20,
		Workers:        1,
		Updates:        10,
		BufferCapacity: 0,
		RolloutPrior:   searcher.ConstantPrior,
		Seed:           1,
		SelfPlay:       selfplay.DefaultConfig(),
	}
}

func (c Config) Validate() error {
	if c.Games < 0 {
		return fmt.Errorf("%w: games must not be negative, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Updates < 0 {
		return fmt.Errorf("%w: updates must not be negative, got %d", ErrInvalidConfig, c.Updates)
	}
	if c.BufferCapacity < 0 {
		return fmt.Errorf("%w: buffer capacity must not be negative, got %d", ErrInvalidConfig, c.BufferCapacity)
	}
	if err := c.SelfPlay.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
