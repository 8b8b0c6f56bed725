package engine

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/roadgraph/pkg"
	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"github.com/lintang-b-s/roadgraph/pkg/maploader"
	"github.com/lintang-b-s/roadgraph/pkg/osmparser"
	"github.com/lintang-b-s/roadgraph/pkg/util"
	"go.uber.org/zap"
)

const queryCacheSize = 1 << 14

type queryCacheKey struct {
	algorithm string
	s, t      datastructure.Coordinate
}

// Engine answers shortest path queries on a road graph loaded once at startup.
// the graph is read only after construction, so an Engine is safe for concurrent queries.
type Engine struct {
	graph      *datastructure.Graph
	heuristic  routing.Heuristic
	queryCache *lru.Cache[queryCacheKey, routing.QueryResult]
	logger     *zap.Logger
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

// NewEngine loads mapFile. every supported map file has (lat, lon) vertices and km edge lengths,
// so an empty heuristicName means greatcircle.
func NewEngine(mapFile, heuristicName string, logger *zap.Logger) (*Engine, error) {
	if heuristicName == "" {
		heuristicName = pkg.HEURISTIC_GREATCIRCLE
	}
	heuristic, err := HeuristicByName(heuristicName)
	if err != nil {
		return nil, err
	}

	graph, err := loadGraph(mapFile, logger)
	if err != nil {
		return nil, err
	}

	return NewEngineDirect(graph, heuristic, logger), nil
}

// NewEngineDirect wraps an already built graph.
func NewEngineDirect(graph *datastructure.Graph, heuristic routing.Heuristic, logger *zap.Logger) *Engine {
	if heuristic == nil {
		heuristic = routing.EuclideanHeuristic
	}
	queryCache, _ := lru.New[queryCacheKey, routing.QueryResult](queryCacheSize)
	return &Engine{
		graph:      graph,
		heuristic:  heuristic,
		queryCache: queryCache,
		logger:     logger,
	}
}

func loadGraph(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	logger.Info("Starting shortest path query engine...")
	graph := datastructure.NewGraph()

	switch {
	case strings.HasSuffix(mapFile, ".pbf"), strings.HasSuffix(mapFile, ".osm"):
		logger.Info("Reading openstreetmap file ", zap.String("mapFile", mapFile))
		if err := osmparser.NewOSMParser(logger).Parse(mapFile, graph); err != nil {
			return nil, err
		}
	case strings.HasSuffix(mapFile, ".map"), strings.HasSuffix(mapFile, ".map.bz2"):
		if err := maploader.Load(mapFile, graph, logger); err != nil {
			return nil, err
		}
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unsupported map file %s, want .map, .map.bz2, .osm or .osm.pbf", mapFile)
	}

	logger.Info("Road graph ready", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))
	return graph, nil
}

// HeuristicByName. empty name means euclidean, the heuristic for planar graphs.
func HeuristicByName(name string) (routing.Heuristic, error) {
	switch name {
	case "", pkg.HEURISTIC_EUCLIDEAN:
		return routing.EuclideanHeuristic, nil
	case pkg.HEURISTIC_GREATCIRCLE:
		return routing.GreatCircleHeuristic, nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown heuristic %q", name)
	}
}

// Bfs path with the fewest edges. distance of the result is the length of that path.
func (e *Engine) Bfs(s, t datastructure.Coordinate, observer routing.SearchObserver) routing.QueryResult {
	bfs := routing.NewBFS(e.graph, observer)
	path, found := bfs.ShortestPath(s, t)
	dist := 0.0
	if found {
		dist, _ = routing.PathLength(e.graph, path)
	}
	return routing.NewQueryResult(pkg.ALGORITHM_BFS, path, dist, bfs.NumSettledNodes(), found)
}

func (e *Engine) Dijkstra(s, t datastructure.Coordinate, observer routing.SearchObserver) routing.QueryResult {
	dijkstra := routing.NewDijkstra(e.graph, observer)
	path, dist, found := dijkstra.ShortestPath(s, t)
	return routing.NewQueryResult(pkg.ALGORITHM_DIJKSTRA, path, dist, dijkstra.NumSettledNodes(), found)
}

func (e *Engine) AStarSearch(s, t datastructure.Coordinate, observer routing.SearchObserver) routing.QueryResult {
	astar := routing.NewAStar(e.graph, e.heuristic, observer)
	path, dist, found := astar.ShortestPath(s, t)
	return routing.NewQueryResult(pkg.ALGORITHM_ASTAR, path, dist, astar.NumSettledNodes(), found)
}

// ShortestPath runs the named algorithm (bfs, dijkstra or astar).
// results of queries without an observer are cached, an observer always gets a fresh search.
func (e *Engine) ShortestPath(algorithm string, s, t datastructure.Coordinate,
	observer routing.SearchObserver) (routing.QueryResult, error) {
	var search func(s, t datastructure.Coordinate, observer routing.SearchObserver) routing.QueryResult
	switch algorithm {
	case pkg.ALGORITHM_BFS:
		search = e.Bfs
	case pkg.ALGORITHM_DIJKSTRA:
		search = e.Dijkstra
	case pkg.ALGORITHM_ASTAR:
		search = e.AStarSearch
	default:
		return routing.QueryResult{}, util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown algorithm %q, want bfs, dijkstra or astar", algorithm)
	}

	if observer != nil {
		return search(s, t, observer), nil
	}

	key := queryCacheKey{algorithm: algorithm, s: s, t: t}
	if res, ok := e.queryCache.Get(key); ok {
		return res, nil
	}
	res := search(s, t, nil)
	e.queryCache.Add(key, res)
	return res, nil
}
