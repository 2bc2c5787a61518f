package trainer

import (
	"fmt"
	"time"

	"alphazero/game"
	"alphazero/searcher"
	"alphazero/selfplay"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Learner is the policy/value estimator being improved. Predict is called concurrently by
// self-play workers; Train is only called between cycles, never concurrently.
type Learner interface {
	searcher.Evaluator
	Train(examples []selfplay.Example) (loss float64, err error)
}

// Report summarises one policy-improvement cycle.
type Report struct {
	Cycle            int
	Games            int
	Examples         int // examples generated this cycle
	BufferSize       int
	Updates          int
	MeanLoss         float64
	SelfPlayDuration time.Duration
	TrainDuration    time.Duration
}

type Coordinator struct {
	game    game.Game
	learner Learner
	config  Config
	buffer  *Buffer
	losses  []float64
	cycle   int
	seeds   uint64
}

func NewCoordinator(g game.Game, learner Learner, config Config) (*Coordinator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Coordinator{
		game:    g,
		learner: learner,
		config:  config,
		buffer:  NewBuffer(config.BufferCapacity),
	}, nil
}

func (c *Coordinator) Buffer() *Buffer {
	return c.buffer
}

// Losses returns the mean loss of every completed cycle.
func (c *Coordinator) Losses() []float64 {
	return append([]float64(nil), c.losses...)
}

// Iterate runs one cycle: self-play games, buffer aggregation, then training steps.
func (c *Coordinator) Iterate() (Report, error) {
	c.cycle++
	report := Report{Cycle: c.cycle, Games: c.config.Games}

	log.Info().Msgf("cycle %d: simulating %d games on %d workers...", c.cycle, c.config.Games, c.workers())
	start := time.Now()
	episodes, err := c.selfPlay()
	if err != nil {
		return report, fmt.Errorf("self-play failed in cycle %d: %w", c.cycle, err)
	}
	report.SelfPlayDuration = time.Since(start)

	for _, examples := range episodes {
		c.buffer.Append(examples...)
		report.Examples += len(examples)
	}
	report.BufferSize = c.buffer.Len()
	log.Info().Msgf("cycle %d: simulating took %s, %d new examples, buffer holds %d", c.cycle, report.SelfPlayDuration, report.Examples, report.BufferSize)

	start = time.Now()
	meanLoss, err := c.train()
	if err != nil {
		return report, fmt.Errorf("training failed in cycle %d: %w", c.cycle, err)
	}
	report.TrainDuration = time.Since(start)
	report.Updates = c.config.Updates
	report.MeanLoss = meanLoss
	c.losses = append(c.losses, meanLoss)

	log.Info().Msgf("cycle %d: training took %s, mean loss %.6f", c.cycle, report.TrainDuration, meanLoss)
	return report, nil
}

func (c *Coordinator) workers() int {
	if c.config.Workers < 1 {
		return 1
	}
	return c.config.Workers
}

// selfPlay runs the cycle's episodes on a bounded pool and returns them in completion order
// once every worker has finished.
func (c *Coordinator) selfPlay() ([][]selfplay.Example, error) {
	results := make(chan []selfplay.Example, c.config.Games)

	var g errgroup.Group
	g.SetLimit(c.workers())
	for i := 0; i < c.config.Games; i++ {
		seed := c.nextSeed()
		g.Go(func() error {
			examples, err := c.playEpisode(seed)
			if err != nil {
				return err
			}
			results <- examples
			return nil
		})
	}
	err := g.Wait()
	close(results)
	if err != nil {
		return nil, err
	}

	episodes := make([][]selfplay.Example, 0, c.config.Games)
	for examples := range results {
		episodes = append(episodes, examples)
	}
	return episodes, nil
}

func (c *Coordinator) nextSeed() uint64 {
	c.seeds++
	return c.config.Seed + c.seeds
}

func (c *Coordinator) playEpisode(seed uint64) ([]selfplay.Example, error) {
	rng := rand.New(rand.NewSource(seed))

	var expander searcher.Expander
	if c.config.Rollout {
		expander = searcher.NewRolloutExpander(rng, c.config.RolloutPrior)
	} else {
		expander = searcher.NewNeuralExpander(c.learner)
	}

	session, err := selfplay.NewSession(c.game, expander, c.config.SelfPlay, rng)
	if err != nil {
		return nil, err
	}
	return session.Run()
}

// train runs the configured number of sequential updates and returns their mean loss.
func (c *Coordinator) train() (float64, error) {
	mean := 0.0
	for i := 0; i < c.config.Updates; i++ {
		loss, err := c.learner.Train(c.buffer.Examples())
		if err != nil {
			return 0, err
		}
		mean = (mean*float64(i) + loss) / float64(i+1)
		log.Debug().Int("update", i+1).Float64("loss", loss).Float64("mean_loss", mean).Msg("training step")
	}
	return mean, nil
}
