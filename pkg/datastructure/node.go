package datastructure

import "golang.org/x/exp/slices"

type Node struct {
	location Coordinate
	edges    []Edge
}

func NewNode(location Coordinate) *Node {
	return &Node{
		location: location,
		edges:    make([]Edge, 0, 2),
	}
}

func (n *Node) GetLocation() Coordinate {
	return n.location
}

// GetEdges returns a copy of the outgoing edges, in insertion order.
func (n *Node) GetEdges() []Edge {
	return slices.Clone(n.edges)
}

func (n *Node) GetOutDegree() int {
	return len(n.edges)
}

func (n *Node) forEdges(handle func(e *Edge)) {
	for i := range n.edges {
		handle(&n.edges[i])
	}
}

func (n *Node) addEdge(e Edge) {
	n.edges = append(n.edges, e)
}
