package searcher

import "math"

// Epsilon keeps the exploration term non-zero at a node with no visits so that priors
// order the first selections.
const Epsilon = 1e-6

// DefaultExploration is the default PUCT exploration constant
const DefaultExploration = 1.0

func puct(q, p float64, n int, sqrtTotal, c float64) float64 {
	return q + c*p*sqrtTotal/float64(1+n)
}

// pickEdge returns the index of the edge with the highest PUCT score.
// Ties go to the lowest index.
func (n *Node) pickEdge(c float64) int {
	if len(n.Edges) == 0 {
		panic("node has no edges")
	}

	sqrtTotal := math.Sqrt(float64(n.Visits()) + Epsilon)

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, e := range n.Edges {
		score := puct(e.Value, e.Prior, e.Visits, sqrtTotal, c)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}
