package shortestpath

import (
	"math"
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"go.uber.org/zap"
)

type pairEdge struct {
	from, to int
	length   float64
}

// randomGraph n vertices on an integer grid and m edges. edge length is at least the euclidean distance
// between its endpoints, so the euclidean heuristic stays admissible and consistent.
func randomGraph(t *testing.T, rng *rand.Rand, n, m int) (*engine.Engine, []da.Coordinate, []pairEdge) {
	t.Helper()
	g := da.NewGraphWithSize(n)
	vertices := make([]da.Coordinate, 0, n)
	for len(vertices) < n {
		c := da.NewCoordinate(float64(rng.Intn(20)), float64(rng.Intn(20)))
		if g.AddVertex(c) {
			vertices = append(vertices, c)
		}
	}

	edges := make([]pairEdge, 0, m)
	for i := 0; i < m; i++ {
		u, v := rng.Intn(n), rng.Intn(n)
		length := vertices[u].EuclideanDistance(vertices[v]) * (1 + rng.Float64())
		if rng.Intn(10) == 0 {
			// small integer lengths produce ties
			length = math.Ceil(vertices[u].EuclideanDistance(vertices[v]))
		}
		if err := g.AddEdge(vertices[u], vertices[v], "road", "residential", length); err != nil {
			t.Fatalf("err: %v", err)
		}
		edges = append(edges, pairEdge{u, v, length})
	}

	return engine.NewEngineDirect(g, routing.EuclideanHeuristic, zap.NewNop()), vertices, edges
}

// bellmanFord distances from s with the given edge weight. +inf if unreachable.
func bellmanFord(n, s int, edges []pairEdge, weight func(e pairEdge) float64) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[s] = 0
	for iter := 0; iter < n; iter++ {
		changed := false
		for _, e := range edges {
			if d := dist[e.from] + weight(e); d < dist[e.to] {
				dist[e.to] = d
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func checkPathShape(t *testing.T, g *da.Graph, path []da.Coordinate, s, goal da.Coordinate) {
	t.Helper()
	if path[0] != s || path[len(path)-1] != goal {
		t.Fatalf("path %v does not run from %v to %v", path, s, goal)
	}
	seen := make(map[da.Coordinate]struct{}, len(path))
	for _, v := range path {
		if _, ok := seen[v]; ok {
			t.Fatalf("path %v repeats vertex %v", path, v)
		}
		seen[v] = struct{}{}
	}
	if _, ok := routing.PathLength(g, path); !ok {
		t.Fatalf("consecutive vertices of path %v are not connected", path)
	}
}
