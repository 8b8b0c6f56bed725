package controllers

import (
	"encoding/json"
	"net"
	"sync/atomic"
	"testing"

	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/roadgraph/pkg/concurrent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsMessage struct {
	Type   string                 `json:"type"`
	Seq    int                    `json:"seq"`
	Route  map[string]interface{} `json:"route"`
	Error  map[string]string      `json:"error"`
	Vertex map[string]float64     `json:"vertex"`
}

func startSearch(t *testing.T, hub *Hub, request string) (net.Conn, chan error) {
	t.Helper()
	server, client := net.Pipe()
	user := hub.Register(server)

	done := make(chan error, 1)
	go func() {
		done <- user.Search()
	}()

	require.NoError(t, wsutil.WriteClientText(client, []byte(request)))
	return client, done
}

func readMessage(t *testing.T, client net.Conn) wsMessage {
	t.Helper()
	data, err := wsutil.ReadServerText(client)
	require.NoError(t, err)
	var msg wsMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubSearchStreamsVisitedVertices(t *testing.T) {
	pool := concurrent.NewPool(2, 0)
	defer pool.Close()
	hub := NewHub(pool, testService(t))

	client, done := startSearch(t, hub, `{"origin_lat":-7.750,"origin_lon":110.370,`+
		`"destination_lat":-7.754,"destination_lon":110.370,"algorithm":"dijkstra"}`)
	defer client.Close()

	visited := 0
	for {
		msg := readMessage(t, client)
		if msg.Type == "visited" {
			assert.Equal(t, visited, msg.Seq)
			visited++
			continue
		}
		require.Equal(t, "route", msg.Type)
		assert.Equal(t, "dijkstra", msg.Route["algorithm"])
		assert.Equal(t, float64(visited), msg.Route["num_settled_nodes"])
		break
	}
	// dijkstra settles A B C D E before the shortcut label of E matters
	assert.Equal(t, 5, visited)
	require.NoError(t, <-done)
	assert.Equal(t, 1, hub.NumUsers())
}

func TestHubSearchValidationError(t *testing.T) {
	pool := concurrent.NewPool(2, 0)
	defer pool.Close()
	hub := NewHub(pool, testService(t))

	client, done := startSearch(t, hub, `{"origin_lat":-7.750,"origin_lon":110.370,`+
		`"destination_lat":-7.754,"destination_lon":110.370,"algorithm":"floyd"}`)
	defer client.Close()

	msg := readMessage(t, client)
	assert.Equal(t, "Bad Request", msg.Error["code"])
	require.NoError(t, <-done)
}

type closeCountingConn struct {
	net.Conn
	closes atomic.Int32
}

func (c *closeCountingConn) Close() error {
	c.closes.Add(1)
	return c.Conn.Close()
}

func TestHubSearchClosesConnOnWriteError(t *testing.T) {
	pool := concurrent.NewPool(2, 0)
	defer pool.Close()
	hub := NewHub(pool, testService(t))

	server, client := net.Pipe()
	conn := &closeCountingConn{Conn: server}
	user := hub.Register(conn)

	done := make(chan error, 1)
	go func() {
		done <- user.Search()
	}()

	require.NoError(t, wsutil.WriteClientText(client, []byte(`{"origin_lat":-7.750,"origin_lon":110.370,`+
		`"destination_lat":-7.754,"destination_lon":110.370,"algorithm":"dijkstra"}`)))
	// peer goes away before the first visited message is read
	require.NoError(t, client.Close())

	require.Error(t, <-done)
	assert.Equal(t, int32(1), conn.closes.Load())
}

func TestHubSearchKeepsConnOnBadRequest(t *testing.T) {
	pool := concurrent.NewPool(2, 0)
	defer pool.Close()
	hub := NewHub(pool, testService(t))

	server, client := net.Pipe()
	defer client.Close()
	conn := &closeCountingConn{Conn: server}
	user := hub.Register(conn)

	done := make(chan error, 1)
	go func() {
		done <- user.Search()
	}()

	require.NoError(t, wsutil.WriteClientText(client, []byte(`{"algorithm":"floyd"}`)))
	msg := readMessage(t, client)
	assert.Equal(t, "Bad Request", msg.Error["code"])
	require.NoError(t, <-done)
	assert.Equal(t, int32(0), conn.closes.Load())
}

func TestHubRemove(t *testing.T) {
	hub := NewHub(concurrent.NewPool(1, 0), testService(t))
	a, _ := net.Pipe()
	b, _ := net.Pipe()
	userA := hub.Register(a)
	userB := hub.Register(b)
	assert.Equal(t, 2, hub.NumUsers())

	hub.Remove(userA)
	hub.Remove(userA)
	assert.Equal(t, 1, hub.NumUsers())

	hub.Remove(userB)
	assert.Equal(t, 0, hub.NumUsers())
}
