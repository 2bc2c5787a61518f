package experiments

import (
	"errors"
	"fmt"

	"alphazero/experiments/metrics"
	"alphazero/game/tictactoe"
	"alphazero/meta"
	"alphazero/trainer"

	"github.com/rs/zerolog/log"
)

const (
	SelfPlay   = "selfplay"
	Rollout    = "rollout"
	Throughput = "throughput"
)

var ErrUnknownExperiment = errors.New("unknown experiment")

// Run dispatches an experiment by name.
func Run(name string, config meta.Config) error {
	var err error
	switch name {
	case SelfPlay:
		_, err = RunSelfPlayExperiment(config)
	case Rollout:
		_, err = RunRolloutExperiment(config)
	case Throughput:
		_, err = RunThroughputExperiment(config, ThroughputWorkers)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
	}
	return err
}

// RunSelfPlayExperiment improves a tabular learner on tic-tac-toe with searches guided by
// its own predictions.
func RunSelfPlayExperiment(config meta.Config) (metrics.ExperimentMetric, error) {
	config.Rollout = false
	return runExperiment(SelfPlay, config)
}

// RunRolloutExperiment trains the same learner on games searched with random playouts.
func RunRolloutExperiment(config meta.Config) (metrics.ExperimentMetric, error) {
	config.Rollout = true
	return runExperiment(Rollout, config)
}

func runExperiment(name string, config meta.Config) (metrics.ExperimentMetric, error) {
	if err := config.Validate(); err != nil {
		return metrics.ExperimentMetric{}, err
	}

	g := tictactoe.New()
	learner := NewTabularLearner(g)
	coordinator, err := trainer.NewCoordinator(g, learner, config.Trainer())
	if err != nil {
		return metrics.ExperimentMetric{}, err
	}

	collector := metrics.NewCollector()
	collector.Start(name)

	log.Info().Msgf("starting %s experiment...", name)

	for i := 0; i < config.Cycles; i++ {
		report, err := coordinator.Iterate()
		if err != nil {
			return metrics.ExperimentMetric{}, fmt.Errorf("%s experiment: %w", name, err)
		}
		collector.AddCycle(report)
		log.Info().Msgf("completed cycle %d of %d with mean loss %.6f, table holds %d states", i+1, config.Cycles, report.MeanLoss, learner.Len())
	}

	metric := collector.Complete()
	log.Info().Msgf("completed %s experiment in %s", name, metric.Duration)

	if err := store(name, config, collector.Records(), metric); err != nil {
		return metric, err
	}
	return metric, nil
}

func store(name string, config meta.Config, records []metrics.CycleRecord, metric metrics.ExperimentMetric) error {
	if config.Output == "" {
		return nil
	}

	writer, err := metrics.NewWriter(config.Output, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteConfig(config); err != nil {
		return fmt.Errorf("failed to store config: %w", err)
	}
	if err := writer.WriteCycleRecords(records); err != nil {
		return fmt.Errorf("failed to write cycle records: %w", err)
	}
	if err := writer.WriteExperimentMetric(metric); err != nil {
		return fmt.Errorf("failed to write experiment metric: %w", err)
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())
	return nil
}
