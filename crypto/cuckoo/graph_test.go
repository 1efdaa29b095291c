package cuckoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphDeterministic(t *testing.T) {
	key := [4]uint64{0, 1, 1, 5}
	g1, err := BuildGraph(key, 8)
	require.NoError(t, err)
	g2, err := BuildGraph(key, 8)
	require.NoError(t, err)
	assert.Equal(t, g1.edges, g2.edges)

	// Independently computed edge list for this key. Positions 2 and 4 are
	// the same pair: the construction is a multigraph.
	want := [][2]uint64{
		{0, 2}, {1, 6}, {1, 7}, {0, 6}, {1, 7}, {7, 6}, {0, 1}, {7, 1},
	}
	require.Equal(t, len(want), g1.EdgeCount())
	for i, p := range want {
		e, ok := g1.EdgeAt(uint64(i))
		require.True(t, ok)
		assert.Equal(t, Edge{U: UNode(p[0]), V: VNode(p[1])}, e)
	}
}

func TestBuildGraphRejectsZeroEdges(t *testing.T) {
	g, err := BuildGraph([4]uint64{1, 2, 3, 4}, 0)
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestGraphCounts(t *testing.T) {
	g, err := BuildGraph([4]uint64{0, 1, 1, 5}, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, g.EdgeCount())
	assert.Equal(t, 128, g.NodeCount())
}

func TestEdgeAtBounds(t *testing.T) {
	g := NewGraphFromPairs([][2]uint64{{0, 0}, {1, 2}})
	e, ok := g.EdgeAt(1)
	require.True(t, ok)
	assert.Equal(t, Edge{U: UNode(1), V: VNode(2)}, e)
	_, ok = g.EdgeAt(2)
	assert.False(t, ok)
}

func TestNodeIdentity(t *testing.T) {
	// U and V nodes sharing a numeric index stay distinct.
	assert.NotEqual(t, UNode(3), VNode(3))
	assert.Equal(t, "u3", UNode(3).String())
	assert.Equal(t, "v3", VNode(3).String())
}
