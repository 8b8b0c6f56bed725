package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/lintang-b-s/roadgraph/pkg"
	"github.com/lintang-b-s/roadgraph/pkg/concurrent"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine"
	log "github.com/lintang-b-s/roadgraph/pkg/logger"
	"go.uber.org/zap"
)

var (
	mapFile    = flag.String("map", "./data/simpletest.map", "road map file (.map, .map.bz2, .osm, .osm.pbf)")
	heuristic  = flag.String("heuristic", pkg.HEURISTIC_GREATCIRCLE, "a* heuristic: euclidean or greatcircle")
	numQueries = flag.Int("n", 1000, "number of random queries")
	seed       = flag.Int64("seed", 42, "random seed")
	outFile    = flag.String("out", "rand_queries_result.csv", "per query csv output")
)

type spParam struct {
	row  int
	s, t da.Coordinate
}

type spResult struct {
	row                           int
	found                         bool
	dijkstraDist, astarDist       float64
	dijkstraSettled, astarSettled int
	dijkstraTime, astarTime       time.Duration
}

// compares dijkstra and a* on random vertex pairs: equal path lengths and fewer settled vertices for a*.
func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	re, err := engine.NewEngine(*mapFile, *heuristic, logger)
	if err != nil {
		panic(err)
	}
	vertices := re.GetGraph().GetVertices()
	if len(vertices) == 0 {
		logger.Fatal("empty graph", zap.String("map", *mapFile))
	}

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = spParam{row: i, s: vertices[rng.Intn(len(vertices))], t: vertices[rng.Intn(len(vertices))]}
	}

	calcSP := func(p spParam) spResult {
		before := time.Now()
		dRes := re.Dijkstra(p.s, p.t, nil)
		dTime := time.Since(before)

		before = time.Now()
		aRes := re.AStarSearch(p.s, p.t, nil)
		aTime := time.Since(before)

		if (p.row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", p.row+1)
		}
		return spResult{
			row: p.row, found: dRes.IsFound(),
			dijkstraDist: dRes.GetDistance(), astarDist: aRes.GetDistance(),
			dijkstraSettled: dRes.GetNumSettledNodes(), astarSettled: aRes.GetNumSettledNodes(),
			dijkstraTime: dTime, astarTime: aTime,
		}
	}

	workers := concurrent.NewWorkerPool[spParam, spResult](runtime.NumCPU(), len(queries))
	workers.Start(calcSP)
	for _, q := range queries {
		workers.AddJob(q)
	}
	workers.Close()

	results := make([]spResult, len(queries))
	for res := range workers.CollectResults() {
		results[res.row] = res
	}

	fout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	defer w.Flush()
	fmt.Fprintln(w, "row found dijkstra_dist astar_dist dijkstra_settled astar_settled dijkstra_ms astar_ms")

	var (
		numFound, mismatches    int
		sumDijkstra, sumAStar   int
		timeDijkstra, timeAStar time.Duration
	)
	for _, res := range results {
		fmt.Fprintf(w, "%d %t %f %f %d %d %d %d\n", res.row, res.found, res.dijkstraDist, res.astarDist,
			res.dijkstraSettled, res.astarSettled, res.dijkstraTime.Milliseconds(), res.astarTime.Milliseconds())

		sumDijkstra += res.dijkstraSettled
		sumAStar += res.astarSettled
		timeDijkstra += res.dijkstraTime
		timeAStar += res.astarTime
		if !res.found {
			continue
		}
		numFound++
		if math.Abs(res.dijkstraDist-res.astarDist) > 1e-6 {
			mismatches++
			logger.Warn("path length mismatch", zap.Int("row", res.row),
				zap.Float64("dijkstra", res.dijkstraDist), zap.Float64("astar", res.astarDist))
		}
	}

	ratio := 0.0
	if sumDijkstra > 0 {
		ratio = float64(sumAStar) / float64(sumDijkstra)
	}
	logger.Info("random queries done", zap.Int("queries", len(results)), zap.Int("found", numFound),
		zap.Int("lengthMismatches", mismatches), zap.Float64("astarToDijkstraSettledRatio", ratio),
		zap.Duration("dijkstraTime", timeDijkstra), zap.Duration("astarTime", timeAStar))
}
