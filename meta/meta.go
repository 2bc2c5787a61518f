// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"io"
	"os"

	"alphazero/searcher"
	"alphazero/selfplay"
	"alphazero/trainer"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CYCLES defines the number of policy-improvement cycles of an experiment.
const CYCLES = 10

// GAMES defines the number of self-play games per cycle.
const GAMES = 20

// GO_ROUTINES defines the number of self-play games played concurrently.
const GO_ROUTINES = 4

// UPDATES defines the number of training steps per cycle.
const UPDATES = 10

const BUFFER_CAPACITY = 5000

// SIMULATIONS defines the number of MCTS simulations per move.
const SIMULATIONS = 100

var ErrInvalidConfig = errors.New("invalid config")

// Config is the experiment configuration loaded from YAML.
type Config struct {
	Cycles         int    `yaml:"cycles"`
	Games          int    `yaml:"games"`
	Workers        int    `yaml:"workers"`
	Updates        int    `yaml:"updates"`
	BufferCapacity int    `yaml:"buffer_capacity"`
	Rollout        bool   `yaml:"rollout"`
	UniformPrior   bool   `yaml:"uniform_rollout_prior"`
	Seed           uint64 `yaml:"seed"`

	Simulations        int     `yaml:"simulations"`
	Exploration        float64 `yaml:"exploration"`
	Temperature        float64 `yaml:"temperature"`
	EndgameTemperature float64 `yaml:"endgame_temperature"`
	TemperatureCutoff  int     `yaml:"temperature_cutoff"`
	DirichletAlpha     float64 `yaml:"dirichlet_alpha"`
	NoiseWeight        float64 `yaml:"noise_weight"`

	LogLevel string `yaml:"log_level"`
	// Output is the root directory of experiment results; empty disables writing.
	Output string `yaml:"output"`
}

func Default() Config {
	sp := selfplay.DefaultConfig()
	return Config{
		Cycles:             CYCLES,
		Games:              GAMES,
		Workers:            GO_ROUTINES,
		Updates:            UPDATES,
		BufferCapacity:     BUFFER_CAPACITY,
		Seed:               1,
		Simulations:        SIMULATIONS,
		Exploration:        sp.Exploration,
		Temperature:        sp.Temperature,
		EndgameTemperature: sp.EndgameTemperature,
		TemperatureCutoff:  sp.TemperatureCutoff,
		DirichletAlpha:     sp.DirichletAlpha,
		NoiseWeight:        sp.NoiseWeight,
		LogLevel:           zerolog.LevelInfoValue,
		Output:             "experiments",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return config, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidConfig, path, err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be positive, got %d", ErrInvalidConfig, c.Cycles)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Trainer().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) SelfPlay() selfplay.Config {
	return selfplay.Config{
		Simulations:        c.Simulations,
		Exploration:        c.Exploration,
		Temperature:        c.Temperature,
		EndgameTemperature: c.EndgameTemperature,
		TemperatureCutoff:  c.TemperatureCutoff,
		DirichletAlpha:     c.DirichletAlpha,
		NoiseWeight:        c.NoiseWeight,
	}
}

func (c Config) Trainer() trainer.Config {
	prior := searcher.ConstantPrior
	if c.UniformPrior {
		prior = searcher.UniformPrior
	}
	return trainer.Config{
		Games:          c.Games,
		Workers:        c.Workers,
		Updates:        c.Updates,
		BufferCapacity: c.BufferCapacity,
		Rollout:        c.Rollout,
		RolloutPrior:   prior,
		Seed:           c.Seed,
		SelfPlay:       c.SelfPlay(),
	}
}
