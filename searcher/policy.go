package searcher

import (
	"errors"
	"fmt"
	"math"

	"alphazero/game"

	"gonum.org/v1/gonum/floats"
)

var ErrStateNotFound = errors.New("state has not been searched")

// Distribution is a probability over the edges of a node, in edge order.
type Distribution struct {
	Actions []game.Action
	Probs   []float64
}

// Distribution turns the visit counts at state into action probabilities N^(1/T)/ΣN^(1/T).
// A node without visits yields a uniform distribution. A non-positive temperature, or one
// small enough to overflow, yields a one-hot distribution at the most visited action.
func (m *MCTS) Distribution(state game.State, temperature float64) (Distribution, error) {
	node, ok := m.tree.Get(state.Key())
	if !ok {
		return Distribution{}, fmt.Errorf("%w: call Simulate first", ErrStateNotFound)
	}
	return node.distribution(temperature), nil
}

func (n *Node) distribution(temperature float64) Distribution {
	k := len(n.Edges)
	d := Distribution{
		Actions: make([]game.Action, k),
		Probs:   make([]float64, k),
	}
	visits := make([]float64, k)
	for i, e := range n.Edges {
		d.Actions[i] = e.Action
		visits[i] = float64(e.Visits)
	}

	if floats.Sum(visits) == 0 {
		for i := range d.Probs {
			d.Probs[i] = 1.0 / float64(k)
		}
		return d
	}

	if raised, ok := raise(visits, temperature); ok {
		floats.ScaleTo(d.Probs, 1/floats.Sum(raised), raised)
		return d
	}

	d.Probs[floats.MaxIdx(visits)] = 1
	return d
}

// raise returns visits^(1/temperature), or false when the result is not usable.
func raise(visits []float64, temperature float64) ([]float64, bool) {
	if temperature <= 0 {
		return nil, false
	}
	exponent := 1 / temperature
	if math.IsInf(exponent, 0) {
		return nil, false
	}

	raised := make([]float64, len(visits))
	for i, v := range visits {
		raised[i] = math.Pow(v, exponent)
	}
	sum := floats.Sum(raised)
	if math.IsInf(sum, 0) || math.IsNaN(sum) || sum == 0 {
		return nil, false
	}
	return raised, true
}
