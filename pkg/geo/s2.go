package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/roadgraph/pkg"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
)

// GreatCircleDistance distance in km between two (lat, lon) coordinates on a spherical earth.
func GreatCircleDistance(a, b da.Coordinate) float64 {
	aLatLng := s2.LatLngFromDegrees(a.GetX(), a.GetY())
	bLatLng := s2.LatLngFromDegrees(b.GetX(), b.GetY())
	return aLatLng.Distance(bLatLng).Radians() * pkg.EARTH_RADIUS_KM
}

// ProjectPointToSegment. closest point to snap on the great-circle segment (pointA, pointB).
func ProjectPointToSegment(pointA, pointB, snap da.Coordinate) da.Coordinate {
	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.GetX(), pointA.GetY()))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.GetX(), pointB.GetY()))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.GetX(), snap.GetY()))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return da.NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointSegmentDistance distance in km from snap to the segment (pointA, pointB).
func PointSegmentDistance(pointA, pointB, snap da.Coordinate) float64 {
	projectionPoint := ProjectPointToSegment(pointA, pointB, snap)
	return GreatCircleDistance(snap, projectionPoint)
}
