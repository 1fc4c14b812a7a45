// Package wsrelay carries climbing requests and replicated snapshots between proxies and the
// authority over websocket connections.
package wsrelay

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/oclimb/authority"
	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/oerror"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

const (
	writeWait   = 5 * time.Second
	sendBacklog = 64
)

// request is a climbing request sent by a client.
type request struct {
	Agent string `json:"agent"`
	Kind  string `json:"kind"`
}

// Handler accepts websocket connections and relays the requests read from them to the server.
// Every connection also receives the snapshots replicated by the server.
type Handler struct {
	srv      *authority.Server
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewHandler(srv *authority.Server, log *logrus.Logger) *Handler {
	if log == nil {
		log = game.NopLogger()
	}
	return &Handler{
		srv: srv,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade failed: %v", err)
		return
	}

	c := &conn{
		ws:     ws,
		log:    h.log.WithField("remote", ws.RemoteAddr().String()),
		send:   make(chan authority.Snapshot, sendBacklog),
		done:   make(chan struct{}),
		relays: make(map[string]*authority.Relay),
	}
	c.log.Info("relay connection opened")

	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("conn_type", "relay")
				scope.SetTag("remote", ws.RemoteAddr().String())
			})
			hub.Recover(oerror.New("relay connection crashed: %v", err))
			hub.Flush(time.Second * 5)
		}
	}()

	remove := h.srv.AddObserver(authority.ObserverFunc(c.enqueue))
	go c.writeLoop()
	defer func() {
		remove()
		close(c.done)
		c.close()
		c.log.Info("relay connection closed")
	}()
	c.readLoop(h.srv.Channel())
}

type conn struct {
	ws  *websocket.Conn
	log *logrus.Entry

	mu   deadlock.Mutex
	send chan authority.Snapshot
	done chan struct{}

	relays map[string]*authority.Relay
}

// enqueue queues a snapshot for the connection. It is called on the tick goroutine and never
// blocks, so snapshots are dropped for connections that fall behind.
func (c *conn) enqueue(s authority.Snapshot) {
	select {
	case c.send <- s:
	default:
		c.log.WithField("tick", s.Tick).Warn("dropped snapshot for slow connection")
	}
}

func (c *conn) readLoop(ch *authority.Channel) {
	for {
		var req request
		if err := c.ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warnf("read failed: %v", err)
			}
			return
		}
		kind, ok := climb.ParseRequestKind(req.Kind)
		if !ok || req.Agent == "" {
			c.log.WithFields(logrus.Fields{"agent": req.Agent, "kind": req.Kind}).Warn("ignored invalid request")
			continue
		}

		relay, ok := c.relays[req.Agent]
		if !ok {
			relay = ch.Relay(authority.NewAgentID(req.Agent))
			c.relays[req.Agent] = relay
		}
		if err := relay.Send(kind); err != nil {
			c.log.Warnf("relay failed: %v", err)
			return
		}
	}
}

func (c *conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case s := <-c.send:
			if err := c.write(s); err != nil {
				c.log.Warnf("write failed: %v", err)
				return
			}
		}
	}
}

func (c *conn) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	c.ws.Close()
}
