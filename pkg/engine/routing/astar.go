package routing

import (
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
)

// Heuristic estimates the remaining distance from v to goal, in the same unit as edge length.
// a* is optimal when it never overestimates and h(u) <= length(u,v) + h(v) for every edge.
type Heuristic func(v, goal da.Coordinate) float64

func ZeroHeuristic(v, goal da.Coordinate) float64 {
	return 0
}

// EuclideanHeuristic straight-line distance in coordinate units.
func EuclideanHeuristic(v, goal da.Coordinate) float64 {
	return v.EuclideanDistance(goal)
}

// GreatCircleHeuristic haversine distance in km for (lat, lon) graphs whose edge lengths are in km.
// uses the same formula as the map loaders, so h(u) equals length(u,v) on a direct edge to the goal.
func GreatCircleHeuristic(v, goal da.Coordinate) float64 {
	return geo.CalculateHaversineDistance(v.GetX(), v.GetY(), goal.GetX(), goal.GetY())
}

// AStar goal directed dijkstra, queue rank = distance from start + heuristic to goal.
type AStar struct {
	ls labelSetting
}

// NewAStar. nil heuristic means EuclideanHeuristic.
func NewAStar(graph *da.Graph, heuristic Heuristic, observer SearchObserver) *AStar {
	if heuristic == nil {
		heuristic = EuclideanHeuristic
	}
	return &AStar{
		ls: newLabelSetting(graph, observer, heuristic),
	}
}

// ShortestPath returns the minimum length path start -> goal and its length.
// found is false if start or goal is not a vertex or goal is unreachable.
func (as *AStar) ShortestPath(start, goal da.Coordinate) ([]da.Coordinate, float64, bool) {
	return as.ls.shortestPath(start, goal)
}

func (as *AStar) NumSettledNodes() int {
	return as.ls.numSettledNodes
}
