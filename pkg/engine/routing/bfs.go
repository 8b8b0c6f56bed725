package routing

import (
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
)

// BFS unweighted breadth first search. finds a path with the fewest edges.
type BFS struct {
	graph    *da.Graph
	observer SearchObserver

	visited map[da.Coordinate]struct{}
	parent  map[da.Coordinate]da.Coordinate

	numSettledNodes int
}

func NewBFS(graph *da.Graph, observer SearchObserver) *BFS {
	return &BFS{
		graph:    graph,
		observer: observerOrNoop(observer),
	}
}

// ShortestPath returns the path start -> goal (both inclusive) with the minimum number of edges.
// found is false if start or goal is not a vertex or goal is unreachable.
func (bs *BFS) ShortestPath(start, goal da.Coordinate) ([]da.Coordinate, bool) {
	bs.visited = make(map[da.Coordinate]struct{})
	bs.parent = make(map[da.Coordinate]da.Coordinate)
	bs.numSettledNodes = 0

	if !bs.graph.HasVertex(start) || !bs.graph.HasVertex(goal) {
		return nil, false
	}

	queue := make([]da.Coordinate, 0, 16)
	queue = append(queue, start)
	bs.visited[start] = struct{}{}

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		bs.numSettledNodes++
		bs.observer.VertexVisited(curr)

		if curr == goal {
			return reconstructPath(start, goal, bs.parent), true
		}

		bs.graph.ForOutEdgesOf(curr, func(e da.Edge) {
			next := e.GetTo()
			if _, ok := bs.visited[next]; ok {
				return
			}
			// mark at enqueue time so a vertex is enqueued at most once
			bs.visited[next] = struct{}{}
			bs.parent[next] = curr
			queue = append(queue, next)
		})
	}

	return nil, false
}

func (bs *BFS) NumSettledNodes() int {
	return bs.numSettledNodes
}
