// Package randomgraph deterministically generates a graph given a seed and a
// weight range. Expands original_source/part_3/random_graph.{hpp,cpp} (which
// only generated unweighted, undirected, unit-capacity graphs) to the
// directed/weighted signature original_source/part_9/apps/server.cpp actually
// calls: generate_random_graph(V, E, seed, directed, wmin, wmax).
package randomgraph

import (
	"math/rand"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// edgeKey dedups undirected pairs the way the original's std::set<pair<int,int>>
// of (min(u,v), max(u,v)) does.
type edgeKey struct{ a, b int }

// Generate builds a graph with the given vertex/edge count, deterministic by
// seed, assigning each edge a weight uniformly in [wmin, wmax]. Self-loops
// are skipped and duplicate edges are rejection-sampled, mirroring the
// original generator's loop.
func Generate(vertices, edges, seed int, directed bool, wmin, wmax int) (*graph.Graph, error) {
	g, err := graph.New(vertices, directed)
	if err != nil {
		return nil, err
	}
	if edges <= 0 {
		return g, nil
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	used := make(map[edgeKey]bool, edges)
	added := 0

	// Bound attempts so a request for more edges than the graph can hold
	// (already clamped by the caller, see protocol.ClampEdgeCount) cannot
	// spin forever; this is a defensive backstop, not a protocol behavior.
	maxAttempts := edges * 100
	if maxAttempts < 1000 {
		maxAttempts = 1000
	}

	for attempt := 0; added < edges && attempt < maxAttempts; attempt++ {
		u := rng.Intn(vertices)
		v := rng.Intn(vertices)
		if u == v {
			continue
		}
		key := edgeKey{a: min(u, v), b: max(u, v)}
		if !directed {
			if used[key] {
				continue
			}
		} else {
			dk := edgeKey{a: u, b: v}
			if used[dk] {
				continue
			}
			key = dk
		}

		w := wmin
		if wmax > wmin {
			w = wmin + rng.Intn(wmax-wmin+1)
		}
		if err := g.AddEdge(u, v, w); err != nil {
			return nil, err
		}
		used[key] = true
		added++
	}
	return g, nil
}
