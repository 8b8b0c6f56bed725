package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/roadgraph/pkg"
	helper "github.com/lintang-b-s/roadgraph/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/computeRoutes", api.shortestPath)
	group.GET("/graph", api.graph)
	group.GET("/neighbors", api.neighbors)
}

// shortestPath
//
//	@Summary		shortest path between the road vertices nearest to origin and destination
//	@Tags			routing
//	@Produce		application/json
//	@Param			origin_lat		query	number	true	"origin latitude"
//	@Param			origin_lon		query	number	true	"origin longitude"
//	@Param			destination_lat	query	number	true	"destination latitude"
//	@Param			destination_lon	query	number	true	"destination longitude"
//	@Param			algorithm		query	string	false	"bfs, dijkstra or astar (default astar)"
//	@Param			format			query	string	false	"polyline (default) or geojson"
//	@Success		200	{object}	shortestPathResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Router			/computeRoutes [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request shortestPathRequest

	query := r.URL.Query()
	for _, param := range []struct {
		name string
		dst  *float64
	}{
		{"origin_lat", &request.OriginLat},
		{"origin_lon", &request.OriginLon},
		{"destination_lat", &request.DestinationLat},
		{"destination_lon", &request.DestinationLon},
	} {
		if err := parseFloatParam(query, param.name, true, param.dst); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	request.Algorithm = query.Get("algorithm")
	if request.Algorithm == "" {
		request.Algorithm = pkg.ALGORITHM_ASTAR
	}
	request.Format = query.Get("format")

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.routingService.ShortestPath(request.Algorithm, request.OriginLat, request.OriginLon,
		request.DestinationLat, request.DestinationLon, nil)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp, err := NewShortestPathResponse(res, request.Format)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// graph
//
//	@Summary		vertex count, edge count and bounding box of the loaded road graph
//	@Tags			routing
//	@Produce		application/json
//	@Success		200	{object}	graphResponse
//	@Router			/graph [get]
func (api *routingAPI) graph(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGraphResponse(api.routingService.GraphStats())},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// neighbors
//
//	@Summary		outgoing edges of the vertex nearest to a point, plus the nearest road segment
//	@Tags			routing
//	@Produce		application/json
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"initial snap radius in degrees"
//	@Success		200	{object}	neighborsResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Router			/neighbors [get]
func (api *routingAPI) neighbors(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request neighborsRequest

	query := r.URL.Query()
	if err := parseFloatParam(query, "lat", true, &request.Lat); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := parseFloatParam(query, "lon", true, &request.Lon); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := parseFloatParam(query, "radius", false, &request.Radius); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	v, edges, err := api.routingService.Neighbors(request.Lat, request.Lon, request.Radius)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}
	nearest, hasNearest := api.routingService.NearestRoad(request.Lat, request.Lon)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNeighborsResponse(v, edges, nearest, hasNearest)},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
