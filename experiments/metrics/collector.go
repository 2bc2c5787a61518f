package metrics

import (
	"time"

	"alphazero/trainer"
)

type CycleRecord struct {
	Experiment string
	trainer.Report
}

type ExperimentMetric struct {
	Name          string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	Cycles        int
	TotalGames    int
	TotalExamples int
	FinalLoss     float64
}

// Collector accumulates the reports of an experiment's policy-improvement cycles.
type Collector interface {
	Start(name string)
	AddCycle(report trainer.Report)
	Records() []CycleRecord
	Complete() ExperimentMetric
}

type collector struct {
	name      string
	startTime time.Time
	records   []CycleRecord
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(name string) {
	m.name = name
	m.startTime = time.Now()
	m.records = nil
}

func (m *collector) AddCycle(report trainer.Report) {
	m.records = append(m.records, CycleRecord{Experiment: m.name, Report: report})
}

func (m *collector) Records() []CycleRecord {
	return append([]CycleRecord(nil), m.records...)
}

func (m *collector) Complete() ExperimentMetric {
	end := time.Now()
	metric := ExperimentMetric{
		Name:      m.name,
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
		Cycles:    len(m.records),
	}
	for _, r := range m.records {
		metric.TotalGames += r.Games
		metric.TotalExamples += r.Examples
	}
	if len(m.records) > 0 {
		metric.FinalLoss = m.records[len(m.records)-1].MeanLoss
	}
	return metric
}
