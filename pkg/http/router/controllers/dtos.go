package controllers

import (
	"encoding/json"

	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
	"github.com/lintang-b-s/roadgraph/pkg/http/usecases"
	"github.com/lintang-b-s/roadgraph/pkg/util"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
	Algorithm      string  `json:"algorithm" validate:"required,oneof=bfs dijkstra astar"`
	Format         string  `json:"format" validate:"omitempty,oneof=polyline geojson"`
}

type shortestPathResponse struct {
	Algorithm       string          `json:"algorithm"`
	Dist            float64         `json:"distance"`
	NumSettledNodes int             `json:"num_settled_nodes"`
	NumVertices     int             `json:"num_vertices"`
	Origin          coordinate      `json:"origin"`
	Destination     coordinate      `json:"destination"`
	Path            string          `json:"path,omitempty"`
	GeoJSON         json.RawMessage `json:"geojson,omitempty"`
}

func NewShortestPathResponse(res routing.QueryResult, format string) (shortestPathResponse, error) {
	path := res.GetPath()
	resp := shortestPathResponse{
		Algorithm:       res.GetAlgorithm(),
		Dist:            res.GetDistance(),
		NumSettledNodes: res.GetNumSettledNodes(),
		NumVertices:     len(path),
		Origin:          newCoordinate(path[0]),
		Destination:     newCoordinate(path[len(path)-1]),
	}

	if format == "geojson" {
		feature, err := geo.PathToGeoJSON(path, map[string]interface{}{
			"algorithm": res.GetAlgorithm(),
			"distance":  res.GetDistance(),
		})
		if err != nil {
			return resp, err
		}
		resp.GeoJSON = feature
		return resp, nil
	}

	resp.Path = geo.PolylineFromCoords(path)
	return resp, nil
}

type coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newCoordinate(c datastructure.Coordinate) coordinate {
	return coordinate{Lat: c.GetX(), Lon: c.GetY()}
}

type graphResponse struct {
	NumVertices int        `json:"num_vertices"`
	NumEdges    int        `json:"num_edges"`
	Min         coordinate `json:"min"`
	Max         coordinate `json:"max"`
}

func NewGraphResponse(stats usecases.GraphStats) graphResponse {
	return graphResponse{
		NumVertices: stats.NumVertices,
		NumEdges:    stats.NumEdges,
		Min:         newCoordinate(stats.BoundingBox.GetMin()),
		Max:         newCoordinate(stats.BoundingBox.GetMax()),
	}
}

type neighborsRequest struct {
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lon    float64 `json:"lon" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"min=0,max=1"`
}

type edgeResponse struct {
	To       coordinate `json:"to"`
	RoadName string     `json:"road_name"`
	RoadType string     `json:"road_type"`
	Length   float64    `json:"length"`
	Bearing  float64    `json:"bearing"`
}

type nearestRoadResponse struct {
	RoadName   string     `json:"road_name"`
	RoadType   string     `json:"road_type"`
	From       coordinate `json:"from"`
	To         coordinate `json:"to"`
	DistanceKm float64    `json:"distance_km"`
}

type neighborsResponse struct {
	Vertex      coordinate           `json:"vertex"`
	Edges       []edgeResponse       `json:"edges"`
	NearestRoad *nearestRoadResponse `json:"nearest_road,omitempty"`
}

func NewNeighborsResponse(v datastructure.Coordinate, edges []datastructure.Edge,
	nearest usecases.NearestRoad, hasNearest bool) neighborsResponse {
	resp := neighborsResponse{
		Vertex: newCoordinate(v),
		Edges:  make([]edgeResponse, 0, len(edges)),
	}
	for _, e := range edges {
		resp.Edges = append(resp.Edges, edgeResponse{
			To:       newCoordinate(e.GetTo()),
			RoadName: e.GetRoadName(),
			RoadType: e.GetRoadType(),
			Length:   e.GetLength(),
			Bearing:  util.RoundFloat(geo.BearingTo(v.GetX(), v.GetY(), e.GetTo().GetX(), e.GetTo().GetY()), 2),
		})
	}
	if hasNearest {
		resp.NearestRoad = &nearestRoadResponse{
			RoadName:   nearest.Edge.GetRoadName(),
			RoadType:   nearest.Edge.GetRoadType(),
			From:       newCoordinate(nearest.Edge.GetFrom()),
			To:         newCoordinate(nearest.Edge.GetTo()),
			DistanceKm: nearest.DistanceKm,
		}
	}
	return resp
}

// websocket messages

type visitedEvent struct {
	Type   string     `json:"type"`
	Seq    int        `json:"seq"`
	Vertex coordinate `json:"vertex"`
}

type routeEvent struct {
	Type            string               `json:"type"`
	Route           shortestPathResponse `json:"route"`
	VisitedTruncate bool                 `json:"visited_truncated"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
