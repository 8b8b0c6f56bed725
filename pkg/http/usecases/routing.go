package usecases

import (
	"errors"

	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"github.com/lintang-b-s/roadgraph/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound   = errors.New("path not found")
	ErrNoNearbyVertex = errors.New("no road vertex near the query point")
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// ShortestPath snaps origin and destination to their nearest vertices and runs algorithm between them.
// observer may be nil.
func (rs *RoutingService) ShortestPath(algorithm string, origLat, origLon, dstLat, dstLon float64,
	observer routing.SearchObserver) (routing.QueryResult, error) {
	s, t, err := rs.snapOrigDestToNearbyVertices(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return routing.QueryResult{}, err
	}

	res, err := rs.engine.ShortestPath(algorithm, s, t, observer)
	if err != nil {
		return routing.QueryResult{}, err
	}
	if !res.IsFound() {
		return res, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound,
			"no path found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon)
	}

	rs.log.Debug("shortest path query", zap.String("algorithm", algorithm),
		zap.Int("settledNodes", res.GetNumSettledNodes()), zap.Float64("distance", res.GetDistance()))
	return res, nil
}

type GraphStats struct {
	NumVertices int
	NumEdges    int
	BoundingBox datastructure.BoundingBox
}

func (rs *RoutingService) GraphStats() GraphStats {
	graph := rs.engine.GetGraph()
	return GraphStats{
		NumVertices: graph.NumberOfVertices(),
		NumEdges:    graph.NumberOfEdges(),
		BoundingBox: graph.BoundingBox(),
	}
}

// Neighbors out edges of the vertex nearest to (lat, lon).
func (rs *RoutingService) Neighbors(lat, lon, radius float64) (datastructure.Coordinate, []datastructure.Edge, error) {
	if radius <= 0 {
		radius = rs.searchRadius
	}
	q := datastructure.NewCoordinate(lat, lon)
	v, ok := rs.spatialIndex.NearestVertex(q, radius)
	if !ok {
		return datastructure.Coordinate{}, nil, util.WrapErrorf(ErrNoNearbyVertex, util.ErrNotFound,
			"no vertex found near %f,%f", lat, lon)
	}
	return v, rs.engine.GetGraph().NeighborsOf(v), nil
}
