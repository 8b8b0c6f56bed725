package usecases

import (
	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ShortestPath(algorithm string, s, t datastructure.Coordinate,
		observer routing.SearchObserver) (routing.QueryResult, error)
}

type SpatialIndex interface {
	NearestVertex(q datastructure.Coordinate, radius float64) (datastructure.Coordinate, bool)
	SegmentsWithinRadius(q datastructure.Coordinate, radius float64) []datastructure.Edge
}
