package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/roadgraph/pkg"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
	"github.com/lintang-b-s/roadgraph/pkg/util"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	ptA = da.NewCoordinate(0, 0)
	ptB = da.NewCoordinate(1, 0)
	ptC = da.NewCoordinate(2, 0)
	ptD = da.NewCoordinate(3, 0)
	ptE = da.NewCoordinate(4, 0)
)

func shortcutEngine(t *testing.T) *Engine {
	t.Helper()
	g := da.NewGraph()
	for _, v := range []da.Coordinate{ptA, ptB, ptC, ptD, ptE} {
		g.AddVertex(v)
	}
	require.NoError(t, g.AddEdge(ptA, ptE, "shortcut", "primary", 10))
	require.NoError(t, g.AddEdge(ptA, ptB, "chain", "residential", 1))
	require.NoError(t, g.AddEdge(ptB, ptC, "chain", "residential", 1))
	require.NoError(t, g.AddEdge(ptC, ptD, "chain", "residential", 1))
	require.NoError(t, g.AddEdge(ptD, ptE, "chain", "residential", 1))
	return NewEngineDirect(g, nil, zap.NewNop())
}

func TestShortestPathDispatch(t *testing.T) {
	e := shortcutEngine(t)

	testCases := []struct {
		algorithm string
		wantPath  []da.Coordinate
		wantDist  float64
	}{
		{algorithm: pkg.ALGORITHM_BFS, wantPath: []da.Coordinate{ptA, ptE}, wantDist: 10},
		{algorithm: pkg.ALGORITHM_DIJKSTRA, wantPath: []da.Coordinate{ptA, ptB, ptC, ptD, ptE}, wantDist: 4},
		{algorithm: pkg.ALGORITHM_ASTAR, wantPath: []da.Coordinate{ptA, ptB, ptC, ptD, ptE}, wantDist: 4},
	}

	for _, tt := range testCases {
		t.Run(tt.algorithm, func(t *testing.T) {
			res, err := e.ShortestPath(tt.algorithm, ptA, ptE, nil)
			require.NoError(t, err)
			require.True(t, res.IsFound())
			assert.Equal(t, tt.algorithm, res.GetAlgorithm())
			assert.Equal(t, tt.wantPath, res.GetPath())
			assert.InDelta(t, tt.wantDist, res.GetDistance(), 1e-9)
			assert.Greater(t, res.GetNumSettledNodes(), 0)
		})
	}
}

func TestShortestPathUnknownAlgorithm(t *testing.T) {
	_, err := shortcutEngine(t).ShortestPath("floyd", ptA, ptE, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestShortestPathNotFound(t *testing.T) {
	e := shortcutEngine(t)
	res, err := e.ShortestPath(pkg.ALGORITHM_DIJKSTRA, ptE, ptA, nil)
	require.NoError(t, err)
	assert.False(t, res.IsFound())
	assert.Nil(t, res.GetPath())
}

func TestShortestPathObserverBypassesCache(t *testing.T) {
	e := shortcutEngine(t)

	first, err := e.ShortestPath(pkg.ALGORITHM_DIJKSTRA, ptA, ptE, nil)
	require.NoError(t, err)
	cached, err := e.ShortestPath(pkg.ALGORITHM_DIJKSTRA, ptA, ptE, nil)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	visited := 0
	res, err := e.ShortestPath(pkg.ALGORITHM_DIJKSTRA, ptA, ptE, routing.ObserverFunc(func(v da.Coordinate) {
		visited++
	}))
	require.NoError(t, err)
	assert.Equal(t, res.GetNumSettledNodes(), visited)
}

func TestHeuristicByName(t *testing.T) {
	for _, name := range []string{"", pkg.HEURISTIC_EUCLIDEAN, pkg.HEURISTIC_GREATCIRCLE} {
		h, err := HeuristicByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, h, name)
	}

	_, err := HeuristicByName("manhattan")
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestNewEngineFromMapFile(t *testing.T) {
	mapFile := filepath.Join(t.TempDir(), "simpletest.map")
	content := "1.0 1.0 4.0 1.0 \"Main street\" residential\n" +
		"4.0 1.0 4.0 2.0 \"Long road\" primary\n"
	require.NoError(t, os.WriteFile(mapFile, []byte(content), 0o644))

	e, err := NewEngine(mapFile, pkg.HEURISTIC_GREATCIRCLE, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, e.GetGraph().NumberOfVertices())

	res, err := e.ShortestPath(pkg.ALGORITHM_ASTAR, da.NewCoordinate(1, 1), da.NewCoordinate(4, 2), nil)
	require.NoError(t, err)
	require.True(t, res.IsFound())
	assert.Len(t, res.GetPath(), 3)
}

func TestNewEngineUnsupportedFile(t *testing.T) {
	_, err := NewEngine("graph.csv", "", zap.NewNop())
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestNewEngineDefaultHeuristicPrunesSearch(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	util.SetConfigDefaults()

	// 9x9 lat/lon grid, 0.01 degree spacing, roads in both directions
	point := func(i, j int) string {
		return fmt.Sprintf("%.2f %.2f", float64(i)*0.01, 110+float64(j)*0.01)
	}
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			if i > 0 {
				fmt.Fprintf(&sb, "%s %s \"Jalan\" residential\n", point(i, j), point(i-1, j))
				fmt.Fprintf(&sb, "%s %s \"Jalan\" residential\n", point(i-1, j), point(i, j))
			}
			if j > 0 {
				fmt.Fprintf(&sb, "%s %s \"Jalan\" residential\n", point(i, j), point(i, j-1))
				fmt.Fprintf(&sb, "%s %s \"Jalan\" residential\n", point(i, j-1), point(i, j))
			}
		}
	}
	mapFile := filepath.Join(t.TempDir(), "grid.map")
	require.NoError(t, os.WriteFile(mapFile, []byte(sb.String()), 0o644))

	e, err := NewEngine(mapFile, viper.GetString("HEURISTIC"), zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 81, e.GetGraph().NumberOfVertices())

	s, goal := da.NewCoordinate(0.04, 110), da.NewCoordinate(0.04, 110.08)
	dijkstra, err := e.ShortestPath(pkg.ALGORITHM_DIJKSTRA, s, goal, nil)
	require.NoError(t, err)
	astar, err := e.ShortestPath(pkg.ALGORITHM_ASTAR, s, goal, nil)
	require.NoError(t, err)

	require.True(t, astar.IsFound())
	assert.InDelta(t, dijkstra.GetDistance(), astar.GetDistance(), 1e-9)
	assert.Less(t, astar.GetNumSettledNodes(), dijkstra.GetNumSettledNodes())

	// an empty name also picks the geographic heuristic
	e, err = NewEngine(mapFile, "", zap.NewNop())
	require.NoError(t, err)
	noName, err := e.ShortestPath(pkg.ALGORITHM_ASTAR, s, goal, nil)
	require.NoError(t, err)
	assert.Equal(t, astar.GetNumSettledNodes(), noName.GetNumSettledNodes())
}
