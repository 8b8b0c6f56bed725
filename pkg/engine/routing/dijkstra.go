package routing

import (
	"github.com/lintang-b-s/roadgraph/pkg"
	da "github.com/lintang-b-s/roadgraph/pkg/datastructure"
)

// labelSetting lazy-deletion label setting search shared by dijkstra and a*.
// queue rank of a vertex v is distance(v) + potential(v).
type labelSetting struct {
	graph     *da.Graph
	observer  SearchObserver
	potential func(v, goal da.Coordinate) float64

	distance  map[da.Coordinate]float64
	parent    map[da.Coordinate]da.Coordinate
	finalized map[da.Coordinate]struct{}

	pq *da.MinHeap[SearchState]

	numSettledNodes int
}

func newLabelSetting(graph *da.Graph, observer SearchObserver,
	potential func(v, goal da.Coordinate) float64) labelSetting {
	return labelSetting{
		graph:     graph,
		observer:  observerOrNoop(observer),
		potential: potential,
		pq:        da.NewFourAryHeap[SearchState](),
	}
}

func (ls *labelSetting) preallocate() {
	ls.distance = make(map[da.Coordinate]float64)
	ls.parent = make(map[da.Coordinate]da.Coordinate)
	ls.finalized = make(map[da.Coordinate]struct{})
	ls.pq.Clear()
	ls.numSettledNodes = 0
}

// getDistance. vertices without a label are at +inf.
func (ls *labelSetting) getDistance(v da.Coordinate) float64 {
	if d, ok := ls.distance[v]; ok {
		return d
	}
	return pkg.INF_WEIGHT
}

func (ls *labelSetting) shortestPath(start, goal da.Coordinate) ([]da.Coordinate, float64, bool) {
	ls.preallocate()

	if !ls.graph.HasVertex(start) || !ls.graph.HasVertex(goal) {
		return nil, 0, false
	}

	ls.distance[start] = 0
	ls.pq.Insert(da.NewPriorityQueueNode(ls.potential(start, goal), NewSearchState(start, start, 0)))

	for !ls.pq.IsEmpty() {
		node, _ := ls.pq.ExtractMin()
		state := node.GetItem()
		u := state.GetLocation()

		if _, ok := ls.finalized[u]; ok {
			// stale entry, a cheaper label of u was already settled
			continue
		}
		ls.finalized[u] = struct{}{}
		ls.numSettledNodes++
		ls.observer.VertexVisited(u)

		if u == goal {
			return reconstructPath(start, goal, ls.parent), state.GetDistanceFromOrigin(), true
		}

		uDist := state.GetDistanceFromOrigin()
		ls.graph.ForOutEdgesOf(u, func(e da.Edge) {
			v := e.GetTo()
			if _, ok := ls.finalized[v]; ok {
				return
			}

			newDist := uDist + e.GetLength()
			if newDist >= ls.getDistance(v) {
				return
			}

			ls.distance[v] = newDist
			ls.parent[v] = u
			ls.pq.Insert(da.NewPriorityQueueNode(newDist+ls.potential(v, goal), NewSearchState(start, v, newDist)))
		})
	}

	return nil, 0, false
}

// Dijkstra shortest path on non-negative edge lengths.
type Dijkstra struct {
	ls labelSetting
}

func NewDijkstra(graph *da.Graph, observer SearchObserver) *Dijkstra {
	return &Dijkstra{
		ls: newLabelSetting(graph, observer, ZeroHeuristic),
	}
}

// ShortestPath returns the minimum length path start -> goal and its length.
// found is false if start or goal is not a vertex or goal is unreachable.
func (d *Dijkstra) ShortestPath(start, goal da.Coordinate) ([]da.Coordinate, float64, bool) {
	return d.ls.shortestPath(start, goal)
}

func (d *Dijkstra) NumSettledNodes() int {
	return d.ls.numSettledNodes
}
