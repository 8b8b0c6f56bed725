package controllers

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/roadgraph/pkg"
	"github.com/lintang-b-s/roadgraph/pkg/concurrent"
	"github.com/lintang-b-s/roadgraph/pkg/datastructure"
	"github.com/lintang-b-s/roadgraph/pkg/engine/routing"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*shortestPathRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &shortestPathRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// visitedStreamer writes every vertex a search visits to the user as a "visited" message.
// stops writing after maxEvents or after the first write error.
type visitedStreamer struct {
	user      *User
	seq       int
	maxEvents int
	truncated bool
	err       error
}

func (vs *visitedStreamer) VertexVisited(v datastructure.Coordinate) {
	if vs.err != nil {
		return
	}
	if vs.seq >= vs.maxEvents {
		vs.truncated = true
		return
	}
	vs.err = vs.user.write(visitedEvent{Type: "visited", Seq: vs.seq, Vertex: newCoordinate(v)})
	vs.seq++
}

// Search reads one search request, streams the visited vertices, then writes the route.
// the connection is closed whenever Search returns an error.
func (u *User) Search() (err error) {
	defer func() {
		if err != nil {
			u.conn.Close()
		}
	}()

	req, err := u.readRequest()
	if err != nil {
		return err
	}

	if req == nil {
		return nil
	}
	if req.Algorithm == "" {
		req.Algorithm = pkg.ALGORITHM_ASTAR
	}

	if err := validateStruct(req); err != nil {
		return u.writeError(http.StatusBadRequest, err.Error())
	}

	streamer := &visitedStreamer{user: u, maxEvents: pkg.WS_MAX_VISITED_EVENT}
	res, err := u.hub.routingService.ShortestPath(req.Algorithm, req.OriginLat, req.OriginLon,
		req.DestinationLat, req.DestinationLon, routing.SearchObserver(streamer))
	if streamer.err != nil {
		return streamer.err
	}
	if err != nil {
		return u.writeError(statusCode(err), err.Error())
	}

	route, err := NewShortestPathResponse(res, req.Format)
	if err != nil {
		return u.writeError(http.StatusInternalServerError, err.Error())
	}
	return u.write(routeEvent{Type: "route", Route: route, VisitedTruncate: streamer.truncated})
}

func (u *User) writeError(status int, message string) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(status),
		"message": message,
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu             sync.RWMutex
	seq            uint
	us             []*User
	ns             map[uint]*User
	routingService RoutingService

	pool *concurrent.Pool
}

func NewHub(pool *concurrent.Pool, routingService RoutingService) *Hub {
	hub := &Hub{
		pool:           pool,
		ns:             make(map[uint]*User),
		us:             make([]*User, 0),
		routingService: routingService,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	// us is sorted by id, ids are assigned in increasing order
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		user.conn.Close()
		h.Remove(user)
	}
}
