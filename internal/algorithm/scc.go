package algorithm

import (
	"strconv"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// SCC counts strongly connected components via Kosaraju's algorithm: a DFS
// pass recording finish order, then a DFS pass over the transpose graph in
// reverse finish order, one tree per SCC.
//
// original_source/part_7/algorithms/Finding_SCC.hpp declares the interface
// (findSCCs returning the component partition) but its .cpp was not part of
// the retrieved sources, so the body below is a standard Kosaraju
// implementation; it returns only the component count, not the partition.
type SCC struct{}

func (SCC) ID() string { return "SCC" }

func (SCC) Run(g *graph.Graph, _ map[string]int) string {
	v := g.Vertices()
	visited := make([]bool, v)
	order := make([]int, 0, v)

	var dfs1 func(u int)
	dfs1 = func(u int) {
		visited[u] = true
		neighbors, _ := g.Neighbors(u)
		for _, w := range neighbors {
			if !visited[w] {
				dfs1(w)
			}
		}
		order = append(order, u)
	}
	for u := 0; u < v; u++ {
		if !visited[u] {
			dfs1(u)
		}
	}

	transpose := make([][]int, v)
	for u := 0; u < v; u++ {
		neighbors, _ := g.Neighbors(u)
		for _, w := range neighbors {
			transpose[w] = append(transpose[w], u)
		}
	}

	for i := range visited {
		visited[i] = false
	}
	var dfs2 func(u int)
	dfs2 = func(u int) {
		visited[u] = true
		for _, w := range transpose[u] {
			if !visited[w] {
				dfs2(w)
			}
		}
	}

	count := 0
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		if !visited[u] {
			dfs2(u)
			count++
		}
	}

	return "RESULT " + strconv.Itoa(count)
}
