package searcher

import (
	"fmt"

	"alphazero/game"
)

type Option func(m *MCTS)

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

// MCTS is a single search context: one tree, one expansion strategy. It is not safe for
// concurrent use; parallel self-play gives every session its own MCTS.
type MCTS struct {
	game        game.Game
	expander    Expander
	tree        *Tree
	exploration float64
	metrics     MetricsCollector
	path        []segment
}

type segment struct {
	node *Node
	edge int
}

func NewMCTS(g game.Game, expander Expander, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		game:        g,
		expander:    expander,
		tree:        NewTree(),
		exploration: DefaultExploration,
		metrics:     NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Tree() *Tree {
	return m.tree
}

// Search runs a number of simulations from state and returns the collected metrics.
func (m *MCTS) Search(state game.State, simulations int) (SearchMetrics, error) {
	m.metrics.Start()
	for i := 0; i < simulations; i++ {
		if _, err := m.Simulate(state); err != nil {
			return m.metrics.Complete(), err
		}
	}
	return m.metrics.Complete(), nil
}

// Simulate descends from state through expanded nodes by PUCT selection, expands or scores
// the first unexpanded state, then backs the resulting outcome up the path. Every node on the
// path reads the outcome at its own player's index. The outcome is returned unmodified.
func (m *MCTS) Simulate(state game.State) (game.Outcome, error) {
	m.metrics.AddSimulation()

	path := m.path[:0]
	for {
		node, ok := m.tree.Get(state.Key())
		if !ok {
			break
		}
		i := node.pickEdge(m.exploration)
		path = append(path, segment{node: node, edge: i})

		next, err := m.game.Play(state, node.Edges[i].Action)
		if err != nil {
			return nil, fmt.Errorf("failed to play action %d: %w", node.Edges[i].Action, err)
		}
		state = next
	}
	m.path = path

	outcome, err := m.evaluate(state)
	if err != nil {
		return nil, err
	}

	backup(path, outcome)
	return outcome, nil
}

func (m *MCTS) evaluate(state game.State) (game.Outcome, error) {
	if outcome, over := m.game.Outcome(state); over {
		m.metrics.AddTerminal()
		return outcome, m.checkOutcome(outcome)
	}

	node, value, err := m.expander.Expand(m.game, state)
	if err != nil {
		return nil, err
	}
	if err := m.checkOutcome(value); err != nil {
		return nil, err
	}
	m.tree.Insert(state.Key(), node)
	m.metrics.AddExpansion()
	return value, nil
}

func (m *MCTS) checkOutcome(outcome game.Outcome) error {
	if len(outcome) != m.game.Players() {
		return fmt.Errorf("outcome has %d scores for %d players", len(outcome), m.game.Players())
	}
	return nil
}

func backup(path []segment, outcome game.Outcome) {
	for i := len(path) - 1; i >= 0; i-- {
		s := path[i]
		s.node.Edges[s.edge].update(outcome[s.node.Player])
	}
}
