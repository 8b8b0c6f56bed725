package geo

import (
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PathToGeoJSON returns a geojson Feature with a LineString geometry of path.
// geojson positions are [lon, lat].
func PathToGeoJSON(path []da.Coordinate, properties map[string]interface{}) ([]byte, error) {
	ls := make(orb.LineString, 0, len(path))
	for _, c := range path {
		ls = append(ls, orb.Point{c.GetY(), c.GetX()})
	}

	feature := geojson.NewFeature(ls)
	for k, v := range properties {
		feature.Properties[k] = v
	}
	return feature.MarshalJSON()
}
