package searcher

import (
	"testing"

	"alphazero/game"

	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	t.Run("inserts a node once", func(t *testing.T) {
		tree := NewTree()
		first := newNode(0, []game.Action{0}, []float64{1})
		second := newNode(1, []game.Action{1}, []float64{1})

		require.True(t, tree.Insert("s", first))
		require.False(t, tree.Insert("s", second), "Second insert should be refused")

		got, ok := tree.Get("s")
		require.True(t, ok)
		require.Same(t, first, got, "Stored node should not be replaced")
		require.Equal(t, 1, tree.Len())
	})

	t.Run("reports missing keys", func(t *testing.T) {
		tree := NewTree()

		require.False(t, tree.Contains("missing"))
		_, ok := tree.Get("missing")
		require.False(t, ok)
	})

	t.Run("edge updates through a fetched node are visible", func(t *testing.T) {
		tree := NewTree()
		tree.Insert("s", newNode(0, []game.Action{0}, []float64{1}))

		node, _ := tree.Get("s")
		node.Edges[0].update(1)

		again, _ := tree.Get("s")
		require.Equal(t, 1, again.Edges[0].Visits)
	})
}
