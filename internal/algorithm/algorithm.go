// Package algorithm implements the four graph algorithms (max-flow, SCC, MST,
// k-cliques) behind a common Algorithm interface plus the validating
// dispatcher that the pipeline stages call. Grounded on
// original_source/part_7/strategy_factory (IAlgorithm/AlgorithmFactory) and
// original_source/part_7/algorithms/*.cpp.
package algorithm

import (
	"fmt"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// Algorithm is the strategy interface every concrete algorithm implements.
type Algorithm interface {
	ID() string
	Run(g *graph.Graph, params map[string]int) string
}

// directedOnly reports whether alg only runs on directed graphs; MAX_FLOW and
// SCC require directed=true, MST and CLIQUES require directed=false.
func directedOnly(id string) bool {
	return id == "MAX_FLOW" || id == "SCC"
}

// New is the factory: maps an algorithm name to a fresh instance.
func New(id string) (Algorithm, bool) {
	switch id {
	case "MAX_FLOW":
		return MaxFlow{}, true
	case "SCC":
		return SCC{}, true
	case "MST":
		return MST{}, true
	case "CLIQUES":
		return Cliques{}, true
	default:
		return nil, false
	}
}

// Dispatch validates alg/directed/params against the graph and, if valid,
// runs the algorithm. It never panics or returns a Go error: every failure
// mode is rendered as an "Error: ..." string per the wire protocol, mirroring
// original_source/part_9/apps/server.cpp's run_alg_or_error.
func Dispatch(id string, g *graph.Graph, params map[string]int, directed bool) string {
	isDirectedAlg := directedOnly(id)
	if isDirectedAlg != directed {
		orientation := "undirected"
		if directed {
			orientation = "directed"
		}
		return fmt.Sprintf("Error: cannot run %s on %s graph", id, orientation)
	}

	v := g.Vertices()

	switch id {
	case "MAX_FLOW":
		src, hasSrc := params["SRC"]
		sink, hasSink := params["SINK"]
		if !hasSrc || !hasSink {
			return "Error: missing SRC/SINK for MAX_FLOW"
		}
		if src < 0 || src >= v || sink < 0 || sink >= v || src == sink {
			return "Error: invalid SRC/SINK for MAX_FLOW"
		}
	case "CLIQUES":
		k, hasK := params["K"]
		if !hasK {
			return "Error: missing K for CLIQUES"
		}
		if k < 2 || k > v {
			return "Error: invalid K for CLIQUES"
		}
	}

	alg, ok := New(id)
	if !ok {
		return "Error: unsupported algorithm " + id
	}
	return alg.Run(g, params)
}
