package wsrelay

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oomph-ac/oclimb/authority"
	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Client is a proxy side connection to a Handler. It implements climb.Relay for a single agent.
type Client struct {
	ws    *websocket.Conn
	agent string

	mu        deadlock.Mutex
	snapshots chan authority.Snapshot
	done      chan struct{}
	closed    bool
}

// Dial connects to the handler listening at url and relays requests for the named agent.
func Dial(ctx context.Context, url, agent string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, oerror.New("dial relay %s: %w", url, err)
	}
	c := &Client{
		ws:        ws,
		agent:     agent,
		snapshots: make(chan authority.Snapshot, sendBacklog),
		done:      make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Send relays a request for the agent of the client.
func (c *Client) Send(kind climb.RequestKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return authority.ErrClosed
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(request{Agent: c.agent, Kind: kind.String()})
}

// Snapshots returns the snapshots replicated by the authority. The channel is closed once the
// connection is lost.
func (c *Client) Snapshots() <-chan authority.Snapshot {
	return c.snapshots
}

func (c *Client) readLoop() {
	defer close(c.snapshots)
	for {
		var s authority.Snapshot
		if err := c.ws.ReadJSON(&s); err != nil {
			return
		}
		select {
		case c.snapshots <- s:
		case <-c.done:
			return
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	return c.ws.Close()
}
