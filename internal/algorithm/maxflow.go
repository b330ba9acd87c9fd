package algorithm

import (
	"strconv"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// MaxFlow computes max-flow between SRC and SINK via Edmonds-Karp (BFS
// augmenting paths over a residual copy of the capacity matrix). Ported from
// original_source/part_7/algorithms/Finding_Max_Flow.cpp.
type MaxFlow struct{}

func (MaxFlow) ID() string { return "MAX_FLOW" }

func (MaxFlow) Run(g *graph.Graph, params map[string]int) string {
	src := params["SRC"]
	sink := params["SINK"]
	v := g.Vertices()
	residual := g.CopyCapacity()

	parent := make([]int, v)
	bfs := func(s, t int) bool {
		for i := range parent {
			parent[i] = -1
		}
		queue := make([]int, 0, v)
		queue = append(queue, s)
		parent[s] = s
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for w := 0; w < v; w++ {
				if parent[w] == -1 && residual[u][w] > 0 {
					parent[w] = u
					if w == t {
						return true
					}
					queue = append(queue, w)
				}
			}
		}
		return false
	}

	maxFlow := 0
	for bfs(src, sink) {
		pathFlow := -1
		for w := sink; w != src; w = parent[w] {
			u := parent[w]
			if pathFlow == -1 || residual[u][w] < pathFlow {
				pathFlow = residual[u][w]
			}
		}
		for w := sink; w != src; w = parent[w] {
			u := parent[w]
			residual[u][w] -= pathFlow
			residual[w][u] += pathFlow
		}
		maxFlow += pathFlow
	}

	return "RESULT " + strconv.Itoa(maxFlow)
}
