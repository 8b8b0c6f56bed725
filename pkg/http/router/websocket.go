package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/roadgraph/pkg/concurrent"
	"github.com/lintang-b-s/roadgraph/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/roadgraph/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

const (
	wsPoolSize   = 64
	wsPoolQueue  = 16
	wsPoolSpawn  = 8
	acceptDelay  = 5 * time.Millisecond
	acceptWindow = time.Millisecond
)

// handleWebsocket serves the search websocket on config.WebsocketPort until ctx is done.
// every message is a search request, the reply is one "visited" message per vertex the search examines
// followed by a "route" message.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("search websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(wsPoolSize, wsPoolQueue)
	api.hub = controllers.NewHub(api.pool, routingService)
	api.pool.Spawn(wsPoolSpawn)

	// accept signals the result of the next Accept()
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		// listener is registered one shot, re-arm it once this connection is handled
		defer api.poller.Resume(acceptDesc)

		err := api.pool.ScheduleTimeout(acceptWindow, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil {
			return
		}

		var ne net.Error
		if errors.Is(err, concurrent.ErrScheduleTimeout) || (errors.As(err, &ne) && ne.Timeout()) {
			// pool is saturated, cool down before accepting again
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, acceptDelay)
			time.Sleep(acceptDelay)
			return
		}
		if errors.Is(err, net.ErrClosed) || errors.Is(err, concurrent.ErrPoolClosed) {
			return
		}
		api.log.Error("accept error", zap.Error(err))
	})

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()

	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle upgrades conn and registers it with the poller, so no goroutine is parked on an idle connection.
// a pool goroutine is taken only when the connection has data to read.
func (api *API) handle(conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("can't poll websocket connection", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		err := api.pool.Schedule(func() {
			if err := user.Search(); err != nil {
				api.log.Error("error serving websocket search", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
		if err != nil {
			// server is shutting down
			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
		}
	})
}
