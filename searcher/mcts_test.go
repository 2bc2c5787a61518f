package searcher

import (
	"errors"
	"testing"

	"alphazero/game"
	"alphazero/game/tictactoe"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSimulateExpansion(t *testing.T) {
	t.Run("expanding the root with evaluator priors", func(t *testing.T) {
		g := pickGame()
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {0.3, 0.7}},
			value:  game.Outcome{0.2, -0.2},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		got, err := m.Simulate(g.InitialState())

		require.NoError(t, err)
		require.Equal(t, game.Outcome{0.2, -0.2}, got, "Expansion should return the evaluator's value")
		node, ok := m.Tree().Get("root")
		require.True(t, ok, "Root should be expanded")
		require.Equal(t, []Edge{
			{Action: 0, Visits: 0, Value: 0, Prior: 0.3},
			{Action: 1, Visits: 0, Value: 0, Prior: 0.7},
		}, node.Edges)
		require.Equal(t, 1, evaluator.calls)
	})

	t.Run("selecting and backing up a terminal outcome", func(t *testing.T) {
		g := pickGame()
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {0.3, 0.7}},
			value:  game.Outcome{0, 0},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		_, err := m.Simulate(g.InitialState())
		require.NoError(t, err)
		got, err := m.Simulate(g.InitialState())
		require.NoError(t, err)

		require.Equal(t, game.Outcome{-1, 1}, got, "Higher prior edge leads to b")
		node, _ := m.Tree().Get("root")
		require.Equal(t, 0, node.Edges[0].Visits)
		require.Equal(t, 1, node.Edges[1].Visits)
		require.Equal(t, -1.0, node.Edges[1].Value, "Root player's score should be backed up")
		require.Equal(t, 1, m.Tree().Len(), "Terminal states should not get nodes")
		require.Equal(t, 1, evaluator.calls, "Terminal leaves should not be evaluated")
	})

	t.Run("terminal root short circuits", func(t *testing.T) {
		g := pickGame()
		g.root = "a"
		evaluator := &mockEvaluator{}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		got, err := m.Simulate(g.InitialState())

		require.NoError(t, err)
		require.Equal(t, game.Outcome{1, -1}, got)
		require.Equal(t, 0, m.Tree().Len())
		require.Equal(t, 0, evaluator.calls)
	})
}

func TestSimulateBackup(t *testing.T) {
	t.Run("every ancestor reads the outcome at its own player", func(t *testing.T) {
		g := mockGame{
			root: "root",
			positions: map[string]mockPosition{
				"root": {player: 0, children: []string{"mid"}},
				"mid":  {player: 1, children: []string{"end"}},
				"end":  {outcome: game.Outcome{0.5, -0.5}},
			},
		}
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {1}, "mid": {1}},
			value:  game.Outcome{0, 0},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		for i := 0; i < 3; i++ {
			_, err := m.Simulate(g.InitialState())
			require.NoError(t, err)
		}

		root, _ := m.Tree().Get("root")
		mid, _ := m.Tree().Get("mid")
		// root: expansion, then values 0 (mid expansion) and 0.5
		require.Equal(t, 2, root.Edges[0].Visits)
		require.InDelta(t, 0.25, root.Edges[0].Value, 1e-9)
		// mid: expanded on simulation 2, backed up -0.5 on simulation 3
		require.Equal(t, 1, mid.Edges[0].Visits)
		require.InDelta(t, -0.5, mid.Edges[0].Value, 1e-9)
	})

	t.Run("transpositions share a node", func(t *testing.T) {
		g := mockGame{
			root: "root",
			positions: map[string]mockPosition{
				"root": {player: 0, children: []string{"mid", "mid"}},
				"mid":  {player: 1, children: []string{"end"}},
				"end":  {outcome: game.Outcome{1, -1}},
			},
		}
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {0.5, 0.5}, "mid": {1}},
			value:  game.Outcome{0, 0},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		for i := 0; i < 10; i++ {
			_, err := m.Simulate(g.InitialState())
			require.NoError(t, err)
		}

		root, _ := m.Tree().Get("root")
		mid, _ := m.Tree().Get("mid")
		require.Equal(t, 2, m.Tree().Len())
		require.Equal(t, 9, root.Visits())
		require.Equal(t, 8, mid.Visits(), "Both root edges should pass through the same node")
		require.Equal(t, 2, evaluator.calls)
	})
}

func TestSimulateRootVisits(t *testing.T) {
	g := tictactoe.New()
	m := NewMCTS(g, NewRolloutExpander(rand.New(rand.NewSource(7)), ConstantPrior), WithMetrics())
	root := g.InitialState()

	metrics, err := m.Search(root, 200)
	require.NoError(t, err)

	node, ok := m.Tree().Get(root.Key())
	require.True(t, ok)
	require.Equal(t, 199, node.Visits(), "Every simulation after the expanding one should visit the root")
	require.EqualValues(t, 200, metrics.Simulations)
	require.EqualValues(t, m.Tree().Len(), metrics.Expansions)
	require.EqualValues(t, 200, metrics.Expansions+metrics.Terminals, "Every simulation should end in an expansion or a terminal state")
}

func TestSearchMetricsPerCall(t *testing.T) {
	g := tictactoe.New()
	m := NewMCTS(g, NewRolloutExpander(rand.New(rand.NewSource(3)), ConstantPrior), WithMetrics())
	root := g.InitialState()

	first, err := m.Search(root, 10)
	require.NoError(t, err)
	second, err := m.Search(root, 10)
	require.NoError(t, err)

	require.EqualValues(t, 10, first.Simulations)
	require.EqualValues(t, 10, second.Simulations, "Each search should report only its own simulations")
	require.EqualValues(t, 10, second.Expansions+second.Terminals)
	require.EqualValues(t, m.Tree().Len(), first.Expansions+second.Expansions)
}

func TestSimulateValueBounds(t *testing.T) {
	g := tictactoe.New()
	rng := rand.New(rand.NewSource(11))
	m := NewMCTS(g, NewRolloutExpander(rng, ConstantPrior), WithExploration(1.5))
	root := g.InitialState()

	_, err := m.Search(root, 500)
	require.NoError(t, err)

	for key, node := range m.Tree().nodes {
		for _, e := range node.Edges {
			require.GreaterOrEqual(t, e.Value, -1.0, "Q out of bounds at %q", key)
			require.LessOrEqual(t, e.Value, 1.0, "Q out of bounds at %q", key)
			require.GreaterOrEqual(t, e.Visits, 0)
		}
	}
}

func TestSimulateErrors(t *testing.T) {
	t.Run("no legal actions at a non-terminal state", func(t *testing.T) {
		g := mockGame{
			root:      "stuck",
			positions: map[string]mockPosition{"stuck": {player: 0}},
		}
		m := NewMCTS(g, NewNeuralExpander(&mockEvaluator{}))

		_, err := m.Simulate(g.InitialState())

		require.ErrorIs(t, err, game.ErrNoLegalActions)
	})

	t.Run("evaluator errors propagate", func(t *testing.T) {
		failure := errors.New("network unavailable")
		g := pickGame()
		m := NewMCTS(g, NewNeuralExpander(&mockEvaluator{err: failure}))

		_, err := m.Simulate(g.InitialState())

		require.ErrorIs(t, err, failure)
		require.Equal(t, 0, m.Tree().Len(), "Failed expansion should not insert a node")
	})

	t.Run("prior length mismatch", func(t *testing.T) {
		g := pickGame()
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {1}},
			value:  game.Outcome{0, 0},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		_, err := m.Simulate(g.InitialState())

		require.ErrorIs(t, err, ErrPriorMismatch)
	})

	t.Run("value with the wrong number of scores", func(t *testing.T) {
		g := pickGame()
		evaluator := &mockEvaluator{
			priors: map[string][]float64{"root": {0.5, 0.5}},
			value:  game.Outcome{0},
		}
		m := NewMCTS(g, NewNeuralExpander(evaluator))

		_, err := m.Simulate(g.InitialState())

		require.Error(t, err)
	})
}
