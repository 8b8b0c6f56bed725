package controllers

import (
	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"github.com/lintang-b-s/roadgraph/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(algorithm string, origLat, origLon, dstLat, dstLon float64,
		observer routing.SearchObserver) (routing.QueryResult, error)
	GraphStats() usecases.GraphStats
	Neighbors(lat, lon, radius float64) (datastructure.Coordinate, []datastructure.Edge, error)
	NearestRoad(lat, lon float64) (usecases.NearestRoad, bool)
}
