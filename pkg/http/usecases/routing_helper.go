package usecases

import (
	"math"

	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
	"github.com/lintang-b-s/roadgraph/pkg/util"
)

func (rs *RoutingService) snapOrigDestToNearbyVertices(origLat, origLon, dstLat, dstLon float64) (datastructure.Coordinate,
	datastructure.Coordinate, error) {
	s, ok := rs.spatialIndex.NearestVertex(datastructure.NewCoordinate(origLat, origLon), rs.searchRadius)
	if !ok {
		return s, s, util.WrapErrorf(ErrNoNearbyVertex, util.ErrNotFound, "no origin candidates found near %f,%f",
			origLat, origLon)
	}

	t, ok := rs.spatialIndex.NearestVertex(datastructure.NewCoordinate(dstLat, dstLon), rs.searchRadius)
	if !ok {
		return s, t, util.WrapErrorf(ErrNoNearbyVertex, util.ErrNotFound, "no destination candidates found near %f,%f",
			dstLat, dstLon)
	}
	return s, t, nil
}

type NearestRoad struct {
	Edge       datastructure.Edge
	DistanceKm float64
}

// NearestRoad road segment closest to (lat, lon) among segments within the snap radius, by great-circle distance.
func (rs *RoutingService) NearestRoad(lat, lon float64) (NearestRoad, bool) {
	q := datastructure.NewCoordinate(lat, lon)
	best := NearestRoad{DistanceKm: math.Inf(1)}
	found := false
	for _, e := range rs.spatialIndex.SegmentsWithinRadius(q, rs.searchRadius) {
		d := geo.PointSegmentDistance(e.GetFrom(), e.GetTo(), q)
		if d < best.DistanceKm {
			best = NearestRoad{Edge: e, DistanceKm: d}
			found = true
		}
	}
	return best, found
}
