package algorithm

import (
	"strconv"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// Cliques counts k-vertex cliques by combinatorial enumeration: every k-subset
// of vertices is generated and checked for pairwise adjacency. Ported from
// original_source/part_7/algorithms/Finding_Num_Cliques.cpp.
type Cliques struct{}

func (Cliques) ID() string { return "CLIQUES" }

func (Cliques) Run(g *graph.Graph, params map[string]int) string {
	k := params["K"]
	current := make([]int, 0, k)
	count := countCliques(g, k, 0, current)
	return "RESULT " + strconv.Itoa(count)
}

func countCliques(g *graph.Graph, k, start int, current []int) int {
	if len(current) == k {
		if isClique(g, current) {
			return 1
		}
		return 0
	}
	count := 0
	n := g.Vertices()
	for v := start; v < n; v++ {
		count += countCliques(g, k, v+1, append(current, v))
	}
	return count
}

func isClique(g *graph.Graph, vertices []int) bool {
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if !g.IsEdge(vertices[i], vertices[j]) {
				return false
			}
		}
	}
	return true
}
