package experiments

import (
	"fmt"

	"alphazero/experiments/metrics"
	"alphazero/game/tictactoe"
	"alphazero/meta"
	"alphazero/trainer"

	"github.com/rs/zerolog/log"
)

var ThroughputWorkers = []int{1, 2, 4, 8, 16}

// RunThroughputExperiment plays one rollout-guided cycle per worker count and records how long
// self-play took. Training is skipped.
func RunThroughputExperiment(config meta.Config, workers []int) ([]metrics.CycleRecord, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := tictactoe.New()
	records := []metrics.CycleRecord{}

	log.Info().Msg("starting throughput experiment...")

	for _, w := range workers {
		tc := config.Trainer()
		tc.Workers = w
		tc.Rollout = true
		tc.Updates = 0

		coordinator, err := trainer.NewCoordinator(g, NewTabularLearner(g), tc)
		if err != nil {
			return nil, err
		}
		report, err := coordinator.Iterate()
		if err != nil {
			return nil, fmt.Errorf("throughput experiment with %d workers: %w", w, err)
		}
		records = append(records, metrics.CycleRecord{
			Experiment: fmt.Sprintf("%s-%d", Throughput, w),
			Report:     report,
		})

		rate := 0.0
		if seconds := report.SelfPlayDuration.Seconds(); seconds > 0 {
			rate = float64(report.Examples) / seconds
		}
		log.Info().Msgf("completed %d games on %d workers in %s (%.1f moves/s)", report.Games, w, report.SelfPlayDuration, rate)
	}

	log.Info().Msg("completed throughput experiment")

	if config.Output == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(config.Output, Throughput)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteConfig(config); err != nil {
		return nil, fmt.Errorf("failed to store config: %w", err)
	}
	if err := writer.WriteCycleRecords(records); err != nil {
		return nil, fmt.Errorf("failed to write cycle records: %w", err)
	}
	return records, nil
}
