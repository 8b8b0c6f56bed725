package routing

import (
	"math"

	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/util"
)

// SearchObserver is notified synchronously of every vertex a search examines.
// it is a side channel for diagnostics/visualization and never changes the search result.
type SearchObserver interface {
	VertexVisited(v da.Coordinate)
}

// ObserverFunc adapts a function to SearchObserver.
type ObserverFunc func(v da.Coordinate)

func (f ObserverFunc) VertexVisited(v da.Coordinate) {
	f(v)
}

type noopObserver struct{}

func (noopObserver) VertexVisited(da.Coordinate) {}

func observerOrNoop(observer SearchObserver) SearchObserver {
	if observer == nil {
		return noopObserver{}
	}
	return observer
}

// SearchState distance label pushed into the priority queue on every relaxation.
// a value, never updated after it is pushed. stale copies are skipped once location is finalized.
type SearchState struct {
	origin             da.Coordinate
	location           da.Coordinate
	distanceFromOrigin float64
}

func NewSearchState(origin, location da.Coordinate, distanceFromOrigin float64) SearchState {
	return SearchState{
		origin:             origin,
		location:           location,
		distanceFromOrigin: distanceFromOrigin,
	}
}

func (s SearchState) GetOrigin() da.Coordinate {
	return s.origin
}

func (s SearchState) GetLocation() da.Coordinate {
	return s.location
}

func (s SearchState) GetDistanceFromOrigin() float64 {
	return s.distanceFromOrigin
}

// reconstructPath walks parent links from goal back to start. result is start -> goal.
func reconstructPath(start, goal da.Coordinate, parent map[da.Coordinate]da.Coordinate) []da.Coordinate {
	path := make([]da.Coordinate, 0)
	curr := goal
	for curr != start {
		path = append(path, curr)
		curr = parent[curr]
	}
	path = append(path, start)
	return util.ReverseG(path)
}

// PathLength sum of edge lengths along path. for parallel edges the shortest one is used.
// returns false if two consecutive vertices are not connected.
func PathLength(graph *da.Graph, path []da.Coordinate) (float64, bool) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		best := math.Inf(1)
		graph.ForOutEdgesOf(path[i], func(e da.Edge) {
			if e.GetTo() == path[i+1] && e.GetLength() < best {
				best = e.GetLength()
			}
		})
		if math.IsInf(best, 1) {
			return 0, false
		}
		total += best
	}
	return total, true
}

// QueryResult outcome of one shortest path query.
type QueryResult struct {
	algorithm       string
	path            []da.Coordinate
	dist            float64
	numSettledNodes int
	found           bool
}

func NewQueryResult(algorithm string, path []da.Coordinate, dist float64, numSettledNodes int, found bool) QueryResult {
	return QueryResult{
		algorithm:       algorithm,
		path:            path,
		dist:            dist,
		numSettledNodes: numSettledNodes,
		found:           found,
	}
}

func (q QueryResult) GetAlgorithm() string {
	return q.algorithm
}

// GetPath nil when no path was found.
func (q QueryResult) GetPath() []da.Coordinate {
	return q.path
}

func (q QueryResult) GetDistance() float64 {
	return q.dist
}

func (q QueryResult) GetNumSettledNodes() int {
	return q.numSettledNodes
}

func (q QueryResult) IsFound() bool {
	return q.found
}
