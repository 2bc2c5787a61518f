package searcher

import (
	"errors"
	"fmt"

	"alphazero/game"

	"golang.org/x/exp/rand"
)

var ErrPriorMismatch = errors.New("prior length does not match legal actions")

// Expander creates the node of a non-terminal state seen for the first time and
// produces the value backed up along the simulated path.
type Expander interface {
	Expand(g game.Game, state game.State) (*Node, game.Outcome, error)
}

// Evaluator is the policy/value estimator. Priors are over the legal actions of the state in
// ascending action order. Implementations shared between sessions must be safe for
// concurrent use.
type Evaluator interface {
	Predict(state game.State) (priors []float64, value game.Outcome, err error)
}

// NeuralExpander takes priors and the leaf value from an Evaluator.
type NeuralExpander struct {
	Evaluator Evaluator
}

func NewNeuralExpander(evaluator Evaluator) *NeuralExpander {
	return &NeuralExpander{Evaluator: evaluator}
}

func (e *NeuralExpander) Expand(g game.Game, state game.State) (*Node, game.Outcome, error) {
	actions := game.Actions(g.LegalActions(state))
	if len(actions) == 0 {
		return nil, nil, game.ErrNoLegalActions
	}

	priors, value, err := e.Evaluator.Predict(state)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to evaluate state: %w", err)
	}
	if len(priors) != len(actions) {
		return nil, nil, fmt.Errorf("%w: %d priors for %d actions", ErrPriorMismatch, len(priors), len(actions))
	}

	return newNode(g.Player(state), actions, priors), value, nil
}

// RolloutPrior selects the prior given to every edge by a RolloutExpander.
type RolloutPrior int

const (
	// ConstantPrior sets P=1 on every edge; priors do not sum to 1.
	ConstantPrior RolloutPrior = iota
	// UniformPrior sets P=1/n on every edge.
	UniformPrior
)

func (p RolloutPrior) value(n int) float64 {
	if p == UniformPrior {
		return 1.0 / float64(n)
	}
	return 1.0
}

// RolloutExpander values a new state by a uniformly random playout to the end of the game.
// It owns its RNG and must not be shared between goroutines.
type RolloutExpander struct {
	rng   *rand.Rand
	prior RolloutPrior
}

func NewRolloutExpander(rng *rand.Rand, prior RolloutPrior) *RolloutExpander {
	return &RolloutExpander{rng: rng, prior: prior}
}

func (e *RolloutExpander) Expand(g game.Game, state game.State) (*Node, game.Outcome, error) {
	actions := game.Actions(g.LegalActions(state))
	if len(actions) == 0 {
		return nil, nil, game.ErrNoLegalActions
	}

	outcome, err := e.rollout(g, state)
	if err != nil {
		return nil, nil, err
	}

	priors := make([]float64, len(actions))
	for i := range priors {
		priors[i] = e.prior.value(len(actions))
	}
	return newNode(g.Player(state), actions, priors), outcome, nil
}

func (e *RolloutExpander) rollout(g game.Game, state game.State) (game.Outcome, error) {
	for {
		if outcome, over := g.Outcome(state); over {
			return outcome, nil
		}

		actions := game.Actions(g.LegalActions(state))
		if len(actions) == 0 {
			return nil, fmt.Errorf("rollout: %w", game.ErrNoLegalActions)
		}

		next, err := g.Play(state, actions[e.rng.Intn(len(actions))])
		if err != nil {
			return nil, fmt.Errorf("rollout: %w", err)
		}
		state = next
	}
}

// UniformEvaluator predicts uniform priors and a zero value for every player.
type UniformEvaluator struct {
	Game game.Game
}

func (u UniformEvaluator) Predict(state game.State) ([]float64, game.Outcome, error) {
	n := len(game.Actions(u.Game.LegalActions(state)))
	if n == 0 {
		return nil, nil, game.ErrNoLegalActions
	}
	priors := make([]float64, n)
	for i := range priors {
		priors[i] = 1.0 / float64(n)
	}
	return priors, make(game.Outcome, u.Game.Players()), nil
}
