package spatialindex

import (
	"math"

	"github.com/lintang-b-s/roadgraph/pkg"
	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Rtree spatial index over graph vertices (points) and road segments (segment bounding boxes).
// radii are in coordinate units, the same units as Coordinate.X/Y.
type Rtree struct {
	vertices *rtree.RTreeG[datastructure.Coordinate]
	segments *rtree.RTreeG[datastructure.Edge]
}

func NewRtree() *Rtree {
	var vertices rtree.RTreeG[datastructure.Coordinate]
	var segments rtree.RTreeG[datastructure.Edge]
	return &Rtree{
		vertices: &vertices,
		segments: &segments,
	}
}

// Build. index every vertex and every edge of graph.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")

	graph.ForVertices(func(v datastructure.Coordinate) {
		p := [2]float64{v.GetX(), v.GetY()}
		rt.vertices.Insert(p, p, v)
	})

	lastReported := -10.0
	graph.ForOutEdges(func(e datastructure.Edge, percentage float64) {
		if percentage-lastReported >= 10 {
			lastReported = percentage
			log.Info("Building R-tree spatial index...", zap.Float64("progress", percentage))
		}
		from, to := e.GetFrom(), e.GetTo()
		min := [2]float64{math.Min(from.GetX(), to.GetX()), math.Min(from.GetY(), to.GetY())}
		max := [2]float64{math.Max(from.GetX(), to.GetX()), math.Max(from.GetY(), to.GetY())}
		rt.segments.Insert(min, max, e)
	})

	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.vertices.Len()),
		zap.Int("segments", rt.segments.Len()))
}

// SearchWithinRadius vertices inside the square of half side radius around q, nearest first.
func (rt *Rtree) SearchWithinRadius(q datastructure.Coordinate, radius float64) []datastructure.Coordinate {
	results := make([]datastructure.Coordinate, 0, 10)
	lower := [2]float64{q.GetX() - radius, q.GetY() - radius}
	upper := [2]float64{q.GetX() + radius, q.GetY() + radius}
	rt.vertices.Search(lower, upper,
		func(min, max [2]float64, data datastructure.Coordinate) bool {
			results = append(results, data)
			return true
		})

	sortByDistance(results, q)
	return results
}

// NearestVertex closest indexed vertex to q. the search square starts at radius and doubles up to
// pkg.MAX_SNAP_RADIUS. returns false if no vertex is found within that.
func (rt *Rtree) NearestVertex(q datastructure.Coordinate, radius float64) (datastructure.Coordinate, bool) {
	if radius <= 0 {
		radius = pkg.DEFAULT_SNAP_RADIUS
	}

	for ; radius <= pkg.MAX_SNAP_RADIUS; radius *= 2 {
		candidates := rt.SearchWithinRadius(q, radius)
		if len(candidates) == 0 {
			continue
		}
		// a vertex in the square may still be farther than one just outside it, unless it lies in the inscribed circle
		if q.EuclideanDistance(candidates[0]) <= radius {
			return candidates[0], true
		}
		wider := rt.SearchWithinRadius(q, q.EuclideanDistance(candidates[0]))
		return wider[0], true
	}
	return datastructure.Coordinate{}, false
}

// SegmentsWithinRadius road segments whose bounding box intersects the square of half side radius around q.
func (rt *Rtree) SegmentsWithinRadius(q datastructure.Coordinate, radius float64) []datastructure.Edge {
	results := make([]datastructure.Edge, 0, 10)
	lower := [2]float64{q.GetX() - radius, q.GetY() - radius}
	upper := [2]float64{q.GetX() + radius, q.GetY() + radius}
	rt.segments.Search(lower, upper,
		func(min, max [2]float64, data datastructure.Edge) bool {
			results = append(results, data)
			return true
		})
	return results
}

func sortByDistance(cs []datastructure.Coordinate, q datastructure.Coordinate) {
	slices.SortFunc(cs, func(a, b datastructure.Coordinate) int {
		da, db := q.EuclideanDistance(a), q.EuclideanDistance(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}
