package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime   time.Time
	Duration    time.Duration
	Simulations int64
	Expansions  int64
	Terminals   int64 // simulations whose leaf was a terminal state
}

type MetricsCollector interface {
	Start()
	AddSimulation()
	AddExpansion()
	AddTerminal()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime   time.Time
	simulations atomic.Int64
	expansions  atomic.Int64
	terminals   atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

// Start begins a new measurement; counts from earlier searches are discarded.
func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.simulations.Store(0)
	m.expansions.Store(0)
	m.terminals.Store(0)
}

func (m *metricsCollector) AddSimulation() {
	m.simulations.Add(1)
}

func (m *metricsCollector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *metricsCollector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:   m.startTime,
		Duration:    time.Since(m.startTime),
		Simulations: m.simulations.Load(),
		Expansions:  m.expansions.Load(),
		Terminals:   m.terminals.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddSimulation()          {}
func (m *noMetricsCollector) AddExpansion()           {}
func (m *noMetricsCollector) AddTerminal()            {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
