package experiments

import (
	"errors"
	"fmt"
	"sync"

	"alphazero/game"
	"alphazero/searcher"
	"alphazero/selfplay"

	"gonum.org/v1/gonum/floats"
)

var ErrTargetMismatch = errors.New("training target does not match the state")

type entry struct {
	policy []float64
	value  game.Outcome
	count  int
}

// TabularLearner keeps the running average of the training targets seen for every state.
// Unseen states are predicted uniformly with a zero value.
type TabularLearner struct {
	game    game.Game
	uniform searcher.UniformEvaluator
	mu      sync.RWMutex
	table   map[game.Key]*entry
}

func NewTabularLearner(g game.Game) *TabularLearner {
	return &TabularLearner{
		game:    g,
		uniform: searcher.UniformEvaluator{Game: g},
		table:   map[game.Key]*entry{},
	}
}

func (l *TabularLearner) Predict(state game.State) ([]float64, game.Outcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.predict(state)
}

func (l *TabularLearner) predict(state game.State) ([]float64, game.Outcome, error) {
	e, ok := l.table[state.Key()]
	if !ok {
		return l.uniform.Predict(state)
	}
	policy := make([]float64, len(e.policy))
	copy(policy, e.policy)
	return policy, e.value.Copy(), nil
}

// Train returns the mean squared error of the current table against the batch, then folds the
// batch into the table.
func (l *TabularLearner) Train(examples []selfplay.Example) (float64, error) {
	if len(examples) == 0 {
		return 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	loss := 0.0
	for _, ex := range examples {
		policy, value, err := l.predict(ex.State)
		if err != nil {
			return 0, err
		}
		if len(policy) != len(ex.Policy) || len(value) != len(ex.Outcome) {
			return 0, fmt.Errorf("%w: move %d of episode %s", ErrTargetMismatch, ex.Move, ex.Episode)
		}
		loss += squaredDistance(policy, ex.Policy) + squaredDistance(value, ex.Outcome)
	}

	for _, ex := range examples {
		e, ok := l.table[ex.State.Key()]
		if !ok {
			e = &entry{
				policy: make([]float64, len(ex.Policy)),
				value:  make(game.Outcome, len(ex.Outcome)),
			}
			l.table[ex.State.Key()] = e
		}
		e.count++
		w := 1 / float64(e.count)
		floats.Scale(1-w, e.policy)
		floats.AddScaled(e.policy, w, ex.Policy)
		floats.Scale(1-w, e.value)
		floats.AddScaled(e.value, w, ex.Outcome)
	}

	return loss / float64(len(examples)), nil
}

func (l *TabularLearner) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.table)
}

func squaredDistance(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	d := floats.Distance(a, b, 2)
	return d * d
}
