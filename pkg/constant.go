package pkg

import "math"

var (
	INF_WEIGHT = math.Inf(1)
)

const (
	DEFAULT_SNAP_RADIUS  = 0.01 // coordinate units (degrees for geographic graphs)
	MAX_SNAP_RADIUS      = 1.0
	EARTH_RADIUS_KM      = 6371.0
	WS_MAX_VISITED_EVENT = 100000
)

// Algorithm names accepted by the engine and the HTTP api.
const (
	ALGORITHM_BFS      = "bfs"
	ALGORITHM_DIJKSTRA = "dijkstra"
	ALGORITHM_ASTAR    = "astar"
)

// Heuristic names for a* search.
const (
	HEURISTIC_EUCLIDEAN   = "euclidean"
	HEURISTIC_GREATCIRCLE = "greatcircle"
)

type OsmHighwayType uint8

// enum of osm highway tags accepted as roads: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}
