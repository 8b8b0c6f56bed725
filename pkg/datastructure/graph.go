package datastructure

import (
	"errors"
	"math"

	"github.com/lintang-b-s/roadgraph/pkg/util"
	"golang.org/x/exp/slices"
)

var (
	ErrVertexNotFound = errors.New("vertex not found in graph")
	ErrInvalidLength  = errors.New("edge length must be a finite non-negative number")
)

// Graph directed road graph. one node per distinct coordinate.
// not safe for concurrent mutation, searches treat it as read-only.
type Graph struct {
	nodes    map[Coordinate]*Node
	order    []Coordinate // insertion order of vertices
	numEdges int

	boundingBox BoundingBox
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Coordinate]*Node),
		order: make([]Coordinate, 0),
		boundingBox: NewBoundingBox(math.Inf(1), math.Inf(1),
			math.Inf(-1), math.Inf(-1)),
	}
}

func NewGraphWithSize(numVertices int) *Graph {
	g := NewGraph()
	g.nodes = make(map[Coordinate]*Node, numVertices)
	g.order = make([]Coordinate, 0, numVertices)
	return g
}

// AddVertex adds a node at location. returns false if location is undefined or already in the graph.
func (g *Graph) AddVertex(location Coordinate) bool {
	if !location.IsDefined() {
		return false
	}
	if _, ok := g.nodes[location]; ok {
		return false
	}

	g.nodes[location] = NewNode(location)
	g.order = append(g.order, location)

	g.boundingBox = NewBoundingBox(math.Min(g.boundingBox.minX, location.X), math.Min(g.boundingBox.minY, location.Y),
		math.Max(g.boundingBox.maxX, location.X), math.Max(g.boundingBox.maxY, location.Y))
	return true
}

// AddEdge adds a directed edge from -> to. both endpoints must already be vertices.
// parallel edges are kept. on error the graph is unchanged.
func (g *Graph) AddEdge(from, to Coordinate, roadName, roadType string, length float64) error {
	fromNode, ok := g.nodes[from]
	if !ok {
		return util.WrapErrorf(ErrVertexNotFound, util.ErrBadParamInput, "edge tail %v is not a vertex", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return util.WrapErrorf(ErrVertexNotFound, util.ErrBadParamInput, "edge head %v is not a vertex", to)
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		return util.WrapErrorf(ErrInvalidLength, util.ErrBadParamInput, "invalid length %v for edge %v -> %v", length, from, to)
	}

	fromNode.addEdge(NewEdge(from, to, roadName, roadType, length))
	g.numEdges++
	return nil
}

// GetVertices returns the vertex set in insertion order.
func (g *Graph) GetVertices() []Coordinate {
	return slices.Clone(g.order)
}

func (g *Graph) NumberOfVertices() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) HasVertex(location Coordinate) bool {
	_, ok := g.nodes[location]
	return ok
}

func (g *Graph) GetNode(location Coordinate) (*Node, bool) {
	n, ok := g.nodes[location]
	return n, ok
}

// NeighborsOf returns a copy of the outgoing edges of location, nil if location is not a vertex.
func (g *Graph) NeighborsOf(location Coordinate) []Edge {
	n, ok := g.nodes[location]
	if !ok {
		return nil
	}
	return n.GetEdges()
}

// ForOutEdgesOf iterates outgoing edges of u without copying the edge list.
func (g *Graph) ForOutEdgesOf(u Coordinate, handle func(e Edge)) {
	n, ok := g.nodes[u]
	if !ok {
		return
	}
	n.forEdges(func(e *Edge) {
		handle(*e)
	})
}

// ForOutEdges iterates every edge of the graph, vertices in insertion order.
func (g *Graph) ForOutEdges(handle func(e Edge, percentage float64)) {
	if g.numEdges == 0 {
		return
	}
	count := 0
	for _, u := range g.order {
		g.nodes[u].forEdges(func(e *Edge) {
			count++
			handle(*e, 100*float64(count)/float64(g.numEdges))
		})
	}
}

// ForVertices iterates vertices in insertion order.
func (g *Graph) ForVertices(handle func(v Coordinate)) {
	for _, v := range g.order {
		handle(v)
	}
}

// BoundingBox of all vertices. min > max for an empty graph.
func (g *Graph) BoundingBox() BoundingBox {
	return g.boundingBox
}
