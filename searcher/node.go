package searcher

import "alphazero/game"

// Edge holds the statistics of one legal action at a node.
// Prior is fixed at expansion; Visits and Value are updated by backups.
type Edge struct {
	Action game.Action
	Visits int
	Value  float64 // mean of the values backed up through this edge
	Prior  float64
}

// update folds one backed-up value into the running mean.
func (e *Edge) update(v float64) {
	n := float64(e.Visits)
	e.Value = (n*e.Value + v) / (n + 1)
	e.Visits++
}

// Node is the edge table of an expanded state, in legal-action enumeration order.
type Node struct {
	Player int
	Edges  []Edge
}

func newNode(player int, actions []game.Action, priors []float64) *Node {
	edges := make([]Edge, len(actions))
	for i, a := range actions {
		edges[i] = Edge{Action: a, Prior: priors[i]}
	}
	return &Node{Player: player, Edges: edges}
}

// Visits returns the number of times the node was traversed as a non-leaf.
func (n *Node) Visits() int {
	total := 0
	for _, e := range n.Edges {
		total += e.Visits
	}
	return total
}
