package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/roadgraph/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVertex(t *testing.T) {
	testCases := []struct {
		name         string
		insert       []Coordinate
		want         []bool
		wantVertices int
	}{
		{
			name:         "distinct vertices",
			insert:       []Coordinate{NewCoordinate(0, 0), NewCoordinate(1, 0), NewCoordinate(0, 1)},
			want:         []bool{true, true, true},
			wantVertices: 3,
		},
		{
			name:         "duplicate by value",
			insert:       []Coordinate{NewCoordinate(1.5, -2), NewCoordinate(1.5, -2)},
			want:         []bool{true, false},
			wantVertices: 1,
		},
		{
			name:         "undefined coordinate",
			insert:       []Coordinate{NewCoordinate(math.NaN(), 0), NewCoordinate(0, math.NaN())},
			want:         []bool{false, false},
			wantVertices: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			for i, c := range tt.insert {
				assert.Equal(t, tt.want[i], g.AddVertex(c))
			}
			assert.Equal(t, tt.wantVertices, g.NumberOfVertices())
			assert.Len(t, g.GetVertices(), tt.wantVertices)
		})
	}
}

func TestAddEdge(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(1, 0)
	missing := NewCoordinate(9, 9)

	testCases := []struct {
		name       string
		from, to   Coordinate
		length     float64
		wantErr    error
		wantEdges  int
		wantDegree int
	}{
		{name: "valid edge", from: a, to: b, length: 1, wantEdges: 1, wantDegree: 1},
		{name: "zero length", from: a, to: b, length: 0, wantEdges: 1, wantDegree: 1},
		{name: "self loop", from: a, to: a, length: 2, wantEdges: 1, wantDegree: 1},
		{name: "missing tail", from: missing, to: b, length: 1, wantErr: ErrVertexNotFound},
		{name: "missing head", from: a, to: missing, length: 1, wantErr: ErrVertexNotFound},
		{name: "negative length", from: a, to: b, length: -0.5, wantErr: ErrInvalidLength},
		{name: "nan length", from: a, to: b, length: math.NaN(), wantErr: ErrInvalidLength},
		{name: "infinite length", from: a, to: b, length: math.Inf(1), wantErr: ErrInvalidLength},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			require.True(t, g.AddVertex(a))
			require.True(t, g.AddVertex(b))

			err := g.AddEdge(tt.from, tt.to, "Main street", "residential", tt.length)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.True(t, errors.Is(err, util.ErrBadParamInput))
				assert.Equal(t, 0, g.NumberOfEdges())
				assert.Empty(t, g.NeighborsOf(a))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEdges, g.NumberOfEdges())
			assert.Len(t, g.NeighborsOf(tt.from), tt.wantDegree)

			node, ok := g.GetNode(tt.from)
			require.True(t, ok)
			assert.Equal(t, tt.wantDegree, node.GetOutDegree())
			assert.Equal(t, tt.from == tt.to, node.GetEdges()[0].IsSelfLoop())
		})
	}
}

func TestParallelEdgesCountedSeparately(t *testing.T) {
	g := NewGraph()
	a, b := NewCoordinate(0, 0), NewCoordinate(1, 1)
	g.AddVertex(a)
	g.AddVertex(b)

	require.NoError(t, g.AddEdge(a, b, "Main street", "primary", 3))
	require.NoError(t, g.AddEdge(a, b, "Main street", "primary", 3))
	require.NoError(t, g.AddEdge(a, b, "Side street", "residential", 1))
	require.Error(t, g.AddEdge(a, NewCoordinate(2, 2), "Nowhere", "residential", 1))

	assert.Equal(t, 3, g.NumberOfEdges())
	edges := g.NeighborsOf(a)
	require.Len(t, edges, 3)
	assert.Equal(t, "Side street", edges[2].GetRoadName())
	assert.Equal(t, 1.0, edges[2].GetLength())
	assert.Equal(t, a, edges[2].GetFrom())
	assert.Equal(t, b, edges[2].GetTo())
}

func TestNeighborsOfReturnsCopy(t *testing.T) {
	g := NewGraph()
	a, b, c := NewCoordinate(0, 0), NewCoordinate(1, 0), NewCoordinate(2, 0)
	g.AddVertex(a)
	g.AddVertex(b)
	g.AddVertex(c)
	require.NoError(t, g.AddEdge(a, b, "", "residential", 1))

	before := g.NeighborsOf(a)
	require.NoError(t, g.AddEdge(a, c, "", "residential", 2))

	assert.Len(t, before, 1)
	assert.Len(t, g.NeighborsOf(a), 2)
	assert.Nil(t, g.NeighborsOf(NewCoordinate(5, 5)))
	assert.Empty(t, g.NeighborsOf(c))
}

func TestEdgeCountMatchesNodes(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 10; i++ {
		g.AddVertex(NewCoordinate(float64(i), 0))
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j += 3 {
			_ = g.AddEdge(NewCoordinate(float64(i), 0), NewCoordinate(float64(j), 0), "", "road", float64(i+j))
		}
	}

	total := 0
	g.ForVertices(func(v Coordinate) {
		total += len(g.NeighborsOf(v))
	})
	assert.Equal(t, total, g.NumberOfEdges())

	visited := 0
	lastPercentage := 0.0
	g.ForOutEdges(func(e Edge, percentage float64) {
		visited++
		lastPercentage = percentage
	})
	assert.Equal(t, g.NumberOfEdges(), visited)
	assert.InDelta(t, 100.0, lastPercentage, 1e-9)
}

func TestBoundingBox(t *testing.T) {
	g := NewGraph()
	g.AddVertex(NewCoordinate(-7.7, 110.3))
	g.AddVertex(NewCoordinate(-7.5, 110.9))
	g.AddVertex(NewCoordinate(-7.6, 110.1))

	bb := g.BoundingBox()
	assert.Equal(t, NewCoordinate(-7.7, 110.1), bb.GetMin())
	assert.Equal(t, NewCoordinate(-7.5, 110.9), bb.GetMax())
	assert.True(t, bb.Contains(NewCoordinate(-7.6, 110.5)))
	assert.False(t, bb.Contains(NewCoordinate(0, 0)))
}
