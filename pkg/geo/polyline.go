package geo

import (
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes a path with the google polyline algorithm, (lat, lon) order.
func PolylineFromCoords(path []da.Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.GetX(), c.GetY()})
	}
	return string(polyline.EncodeCoords(coords))
}

// CoordsFromPolyline decodes an encoded polyline back into coordinates.
func CoordsFromPolyline(encoded string) ([]da.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]da.Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, da.NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
