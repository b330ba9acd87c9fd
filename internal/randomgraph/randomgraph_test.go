package randomgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SameSeedProducesSameGraph(t *testing.T) {
	g1, err := Generate(10, 15, 42, false, 1, 5)
	require.NoError(t, err)
	g2, err := Generate(10, 15, 42, false, 1, 5)
	require.NoError(t, err)

	assert.Equal(t, g1.Capacity(), g2.Capacity())
	assert.Equal(t, g1.Edges(), g2.Edges())
}

func TestGenerate_DifferentSeedsLikelyDiffer(t *testing.T) {
	g1, err := Generate(10, 15, 1, false, 1, 5)
	require.NoError(t, err)
	g2, err := Generate(10, 15, 2, false, 1, 5)
	require.NoError(t, err)

	assert.NotEqual(t, g1.Capacity(), g2.Capacity())
}

func TestGenerate_NoSelfLoops(t *testing.T) {
	g, err := Generate(20, 50, 7, true, 1, 1)
	require.NoError(t, err)
	for u := 0; u < g.Vertices(); u++ {
		assert.False(t, g.IsEdge(u, u))
	}
}

func TestGenerate_WeightsWithinRange(t *testing.T) {
	g, err := Generate(8, 10, 3, false, 2, 4)
	require.NoError(t, err)
	for u := 0; u < g.Vertices(); u++ {
		for v := 0; v < g.Vertices(); v++ {
			if g.IsEdge(u, v) {
				w := g.CapacityAt(u, v)
				assert.GreaterOrEqual(t, w, 2)
				assert.LessOrEqual(t, w, 4)
			}
		}
	}
}

func TestGenerate_ZeroEdgesReturnsEmptyGraph(t *testing.T) {
	g, err := Generate(5, 0, 1, false, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Edges())
}

func TestGenerate_UndirectedEdgeIsSymmetric(t *testing.T) {
	g, err := Generate(6, 8, 99, false, 1, 1)
	require.NoError(t, err)
	for u := 0; u < g.Vertices(); u++ {
		for v := 0; v < g.Vertices(); v++ {
			assert.Equal(t, g.IsEdge(u, v), g.IsEdge(v, u))
		}
	}
}
