package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

func TestDispatch_MaxFlow_DirectedChain(t *testing.T) {
	g, err := graph.New(2, true)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 5))

	result := Dispatch("MAX_FLOW", g, map[string]int{"SRC": 0, "SINK": 1}, true)
	assert.Equal(t, "RESULT 5", result)
}

func TestDispatch_MaxFlow_DirectedMismatch(t *testing.T) {
	g, err := graph.New(2, false)
	require.NoError(t, err)

	result := Dispatch("MAX_FLOW", g, map[string]int{"SRC": 0, "SINK": 1}, false)
	assert.Equal(t, "Error: cannot run MAX_FLOW on undirected graph", result)
}

func TestDispatch_MaxFlow_MissingParams(t *testing.T) {
	g, err := graph.New(2, true)
	require.NoError(t, err)

	result := Dispatch("MAX_FLOW", g, map[string]int{}, true)
	assert.Equal(t, "Error: missing SRC/SINK for MAX_FLOW", result)
}

func TestDispatch_MaxFlow_InvalidParams(t *testing.T) {
	g, err := graph.New(2, true)
	require.NoError(t, err)

	result := Dispatch("MAX_FLOW", g, map[string]int{"SRC": 0, "SINK": 0}, true)
	assert.Equal(t, "Error: invalid SRC/SINK for MAX_FLOW", result)
}

func TestDispatch_Cliques_K4(t *testing.T) {
	g, err := graph.New(4, false)
	require.NoError(t, err)
	for u := 0; u < 4; u++ {
		for v := u + 1; v < 4; v++ {
			require.NoError(t, g.AddEdge(u, v, 1))
		}
	}
	result := Dispatch("CLIQUES", g, map[string]int{"K": 3}, false)
	assert.Equal(t, "RESULT 4", result)
}

func TestDispatch_Cliques_InvalidK(t *testing.T) {
	g, err := graph.New(4, false)
	require.NoError(t, err)
	result := Dispatch("CLIQUES", g, map[string]int{"K": 1}, false)
	assert.Equal(t, "Error: invalid K for CLIQUES", result)
}

func TestDispatch_MST_TriangleWeights(t *testing.T) {
	g, err := graph.New(3, false)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 2))
	require.NoError(t, g.AddEdge(0, 2, 5))

	result := Dispatch("MST", g, map[string]int{}, false)
	assert.Equal(t, "RESULT 3", result)
}

func TestDispatch_SCC_DirectedCycleAndIsolatedVertex(t *testing.T) {
	g, err := graph.New(4, true)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(0, 1, 1))
	require.NoError(t, g.AddEdge(1, 2, 1))
	require.NoError(t, g.AddEdge(2, 0, 1))
	// vertex 3 is isolated: its own SCC.

	result := Dispatch("SCC", g, map[string]int{}, true)
	assert.Equal(t, "RESULT 2", result)
}

func TestDispatch_UnsupportedAlgorithm(t *testing.T) {
	g, err := graph.New(2, true)
	require.NoError(t, err)
	result := Dispatch("BOGUS", g, map[string]int{}, true)
	assert.Contains(t, result, "cannot run BOGUS")
}

func TestNew_FactoryKnowsAllFourAlgorithms(t *testing.T) {
	for _, id := range []string{"MAX_FLOW", "SCC", "MST", "CLIQUES"} {
		alg, ok := New(id)
		require.True(t, ok, id)
		assert.Equal(t, id, alg.ID())
	}
	_, ok := New("NOPE")
	assert.False(t, ok)
}
