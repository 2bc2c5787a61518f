package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh <root>/<name>/<timestamp>-<suffix> directory to hold the files of
// one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	dir := filepath.Join(root, name)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir, err := os.MkdirTemp(dir, timestamp+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteConfig stores the configuration the experiment ran with as YAML.
func (w *Writer) WriteConfig(config any) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(w.baseDir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (w *Writer) WriteCycleRecords(records []CycleRecord) error {
	path := filepath.Join(w.baseDir, "cycle_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cycle records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"experiment", "cycle", "games", "examples", "buffer_size", "updates", "mean_loss", "self_play_duration", "train_duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write cycle records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Experiment,
			strconv.Itoa(record.Cycle),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Examples),
			strconv.Itoa(record.BufferSize),
			strconv.Itoa(record.Updates),
			strconv.FormatFloat(record.MeanLoss, 'g', -1, 64),
			record.SelfPlayDuration.String(),
			record.TrainDuration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write cycle record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush cycle records: %w", err)
	}
	return nil
}

func (w *Writer) WriteExperimentMetric(metric ExperimentMetric) error {
	path := filepath.Join(w.baseDir, "experiment.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create experiment file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	rows := [][]string{
		{"name", "start_time", "end_time", "duration", "cycles", "total_games", "total_examples", "final_loss"},
		{
			metric.Name,
			metric.StartTime.Format(time.RFC3339),
			metric.EndTime.Format(time.RFC3339),
			metric.Duration.String(),
			strconv.Itoa(metric.Cycles),
			strconv.Itoa(metric.TotalGames),
			strconv.Itoa(metric.TotalExamples),
			strconv.FormatFloat(metric.FinalLoss, 'g', -1, 64),
		},
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write experiment metric: %w", err)
	}
	return nil
}
