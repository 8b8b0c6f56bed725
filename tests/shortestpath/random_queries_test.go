package shortestpath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lintang-b-s/roadgraph/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRandomQueriesAgainstBruteForce(t *testing.T) {
	testCases := []struct {
		name string
		n, m int
		seed int64
	}{
		{name: "sparse", n: 15, m: 20, seed: 1},
		{name: "dense", n: 15, m: 120, seed: 2},
		{name: "medium", n: 40, m: 120, seed: 3},
		{name: "single vertex", n: 1, m: 0, seed: 4},
		{name: "self loops and parallel edges", n: 5, m: 60, seed: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(tt.seed))
			re, vertices, edges := randomGraph(t, rng, tt.n, tt.m)
			g := re.GetGraph()

			for s := 0; s < tt.n; s++ {
				dist := bellmanFord(tt.n, s, edges, func(e pairEdge) float64 { return e.length })
				hops := bellmanFord(tt.n, s, edges, func(e pairEdge) float64 { return 1 })

				for goal := 0; goal < tt.n; goal++ {
					sv, gv := vertices[s], vertices[goal]
					reachable := !math.IsInf(dist[goal], 1)

					bfs, err := re.ShortestPath(pkg.ALGORITHM_BFS, sv, gv, nil)
					require.NoError(t, err)
					dijkstra, err := re.ShortestPath(pkg.ALGORITHM_DIJKSTRA, sv, gv, nil)
					require.NoError(t, err)
					astar, err := re.ShortestPath(pkg.ALGORITHM_ASTAR, sv, gv, nil)
					require.NoError(t, err)

					require.Equal(t, reachable, bfs.IsFound(), "bfs %v -> %v", sv, gv)
					require.Equal(t, reachable, dijkstra.IsFound(), "dijkstra %v -> %v", sv, gv)
					require.Equal(t, reachable, astar.IsFound(), "astar %v -> %v", sv, gv)
					if !reachable {
						assert.Nil(t, bfs.GetPath())
						assert.Nil(t, dijkstra.GetPath())
						assert.Nil(t, astar.GetPath())
						continue
					}

					if s == goal {
						assert.Len(t, bfs.GetPath(), 1)
						assert.Len(t, dijkstra.GetPath(), 1)
						assert.Equal(t, 0.0, dijkstra.GetDistance())
					}

					checkPathShape(t, g, bfs.GetPath(), sv, gv)
					checkPathShape(t, g, dijkstra.GetPath(), sv, gv)
					checkPathShape(t, g, astar.GetPath(), sv, gv)

					assert.Equal(t, int(hops[goal])+1, len(bfs.GetPath()), "bfs hops %v -> %v", sv, gv)
					assert.InDelta(t, dist[goal], dijkstra.GetDistance(), eps, "dijkstra %v -> %v", sv, gv)
					assert.InDelta(t, dist[goal], astar.GetDistance(), eps, "astar %v -> %v", sv, gv)
					assert.LessOrEqual(t, astar.GetNumSettledNodes(), dijkstra.GetNumSettledNodes(),
						"astar settled more vertices than dijkstra %v -> %v", sv, gv)
				}
			}
		})
	}
}
