package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lintang-b-s/roadgraph/pkg"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine"
	"github.com/lintang-b-s/roadgraph/pkg/geo"
	"github.com/lintang-b-s/roadgraph/pkg/logger"
	"github.com/lintang-b-s/roadgraph/pkg/spatialindex"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("map", "./data/simpletest.map", "road map file (.map, .map.bz2, .osm, .osm.pbf)")
	algorithm = flag.String("algorithm", pkg.ALGORITHM_ASTAR, "bfs, dijkstra or astar")
	heuristic = flag.String("heuristic", pkg.HEURISTIC_GREATCIRCLE, "a* heuristic: euclidean or greatcircle")
	startLat  = flag.Float64("start_lat", 0, "start latitude")
	startLon  = flag.Float64("start_lon", 0, "start longitude")
	goalLat   = flag.Float64("goal_lat", 0, "goal latitude")
	goalLon   = flag.Float64("goal_lon", 0, "goal longitude")
	snap      = flag.Bool("snap", true, "snap start and goal to the nearest vertex")
	geojson   = flag.Bool("geojson", false, "print the path as a geojson feature instead of one vertex per line")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	re, err := engine.NewEngine(*mapFile, *heuristic, logger)
	if err != nil {
		logger.Fatal("can't load map", zap.Error(err))
	}

	start := da.NewCoordinate(*startLat, *startLon)
	goal := da.NewCoordinate(*goalLat, *goalLon)
	if *snap {
		rtree := spatialindex.NewRtree()
		rtree.Build(re.GetGraph(), logger)

		var ok bool
		if start, ok = rtree.NearestVertex(start, pkg.DEFAULT_SNAP_RADIUS); !ok {
			logger.Fatal("no vertex near start", zap.String("start", da.NewCoordinate(*startLat, *startLon).String()))
		}
		if goal, ok = rtree.NearestVertex(goal, pkg.DEFAULT_SNAP_RADIUS); !ok {
			logger.Fatal("no vertex near goal", zap.String("goal", da.NewCoordinate(*goalLat, *goalLon).String()))
		}
	}

	res, err := re.ShortestPath(*algorithm, start, goal, nil)
	if err != nil {
		logger.Fatal("can't run query", zap.Error(err))
	}
	if !res.IsFound() {
		fmt.Fprintf(os.Stderr, "no path from %v to %v\n", start, goal)
		os.Exit(1)
	}

	logger.Info("path found", zap.String("algorithm", res.GetAlgorithm()),
		zap.Float64("distance", res.GetDistance()), zap.Int("vertices", len(res.GetPath())),
		zap.Int("settledNodes", res.GetNumSettledNodes()))

	if *geojson {
		feature, err := geo.PathToGeoJSON(res.GetPath(), map[string]interface{}{
			"algorithm": res.GetAlgorithm(),
			"distance":  res.GetDistance(),
		})
		if err != nil {
			logger.Fatal("can't encode path", zap.Error(err))
		}
		fmt.Println(string(feature))
		return
	}

	for _, v := range res.GetPath() {
		fmt.Println(v)
	}
	fmt.Printf("distance %f\n", res.GetDistance())
}
