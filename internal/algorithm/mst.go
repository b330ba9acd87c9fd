package algorithm

import (
	"sort"
	"strconv"

	"github.com/yarinkash1/graphsrv/internal/graph"
)

// mstEdge mirrors the original's Edge struct: endpoints plus weight, sortable
// by weight for Kruskal's algorithm.
type mstEdge struct {
	u, v, weight int
}

// disjointSet is a union-find structure with path compression and union by
// rank, ported from original_source/part_7/algorithms/MST_Weight.cpp's DSU.
type disjointSet struct {
	parent, rank []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(x int) int {
	if d.parent[x] != x {
		d.parent[x] = d.find(d.parent[x])
	}
	return d.parent[x]
}

func (d *disjointSet) unite(x, y int) bool {
	xr, yr := d.find(x), d.find(y)
	if xr == yr {
		return false
	}
	switch {
	case d.rank[xr] < d.rank[yr]:
		d.parent[xr] = yr
	case d.rank[xr] > d.rank[yr]:
		d.parent[yr] = xr
	default:
		d.parent[yr] = xr
		d.rank[xr]++
	}
	return true
}

// MST computes the total weight of a minimum spanning tree via Kruskal's
// algorithm. Ported from original_source/part_7/algorithms/MST_Weight.cpp.
type MST struct{}

func (MST) ID() string { return "MST" }

func (MST) Run(g *graph.Graph, _ map[string]int) string {
	n := g.Vertices()
	var edges []mstEdge
	capacity := g.Capacity()
	for u := 0; u < n; u++ {
		neighbors, _ := g.Neighbors(u)
		for _, v := range neighbors {
			if u < v {
				edges = append(edges, mstEdge{u, v, capacity[u][v]})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].weight < edges[j].weight })

	dsu := newDisjointSet(n)
	weight := 0
	used := 0
	for _, e := range edges {
		if dsu.unite(e.u, e.v) {
			weight += e.weight
			used++
			if used == n-1 {
				break
			}
		}
	}
	return "RESULT " + strconv.Itoa(weight)
}
