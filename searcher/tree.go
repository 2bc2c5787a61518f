package searcher

import "alphazero/game"

// Tree maps canonical state keys to expanded nodes. Transpositions share a node.
// A tree belongs to a single search context and is never pruned.
type Tree struct {
	nodes map[game.Key]*Node
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[game.Key]*Node)}
}

func (t *Tree) Contains(key game.Key) bool {
	_, ok := t.nodes[key]
	return ok
}

func (t *Tree) Get(key game.Key) (*Node, bool) {
	node, ok := t.nodes[key]
	return node, ok
}

// Insert stores node under key unless the key is already present, in which case the stored
// node is kept and false is returned.
func (t *Tree) Insert(key game.Key, node *Node) bool {
	if _, ok := t.nodes[key]; ok {
		return false
	}
	t.nodes[key] = node
	return true
}

func (t *Tree) Len() int {
	return len(t.nodes)
}
