package wsrelay

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/oclimb/authority"
	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/oomph-ac/oclimb/world"
)

const testDT = float32(1) / 60

func newServer(t *testing.T) (*authority.Server, *authority.Agent, string) {
	w := world.New()
	w.AddBox(cube.Box(-1000, -100, -1000, 1000, 0, 1000))
	w.AddBox(cube.Box(-500, 0, 100, 500, 300, 200))

	b := movement.NewBase(0, w, movement.DefaultConfig(), nil)
	b.SetPos(mgl32.Vec3{0, 96, 55})
	a := authority.NewAgent("steve", climb.New(b, climb.DefaultConfig()), nil)

	srv := authority.NewServer(nil, authority.NewChannel(16), 0.01)
	if err := srv.AddAgent(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts := httptest.NewServer(NewHandler(srv, nil))
	t.Cleanup(ts.Close)
	return srv, a, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url, agent string) *Client {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	c, err := Dial(ctx, url, agent)
	if err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// stepUntil steps the server until cond holds or a second has passed.
func stepUntil(t *testing.T, srv *authority.Server, cond func() bool) {
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		srv.Step(testDT)
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClientDrivesProxy(t *testing.T) {
	srv, a, url := newServer(t)
	client := dial(t, url, a.Name)

	replica := authority.NewReplica()
	proxyBase := movement.NewBase(0, world.New(), movement.DefaultConfig(), nil)
	proxy := climb.New(proxyBase, climb.DefaultConfig(), climb.WithRelay(client))
	replica.Bind(a.ID, proxy)

	if err := proxy.RequestClimb(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stepUntil(t, srv, func() bool {
		for {
			select {
			case s, ok := <-client.Snapshots():
				if !ok {
					t.Fatalf("connection lost")
				}
				replica.Observe(s)
			default:
				return proxy.IsClimbing() && proxy.ClimbSurfaceNormal().ApproxEqual(mgl32.Vec3{0, 0, -1})
			}
		}
	})
	if !a.Climb.IsClimbing() {
		t.Fatalf("expected the authority agent to climb")
	}
}

func TestHandlerIgnoresInvalidRequests(t *testing.T) {
	srv, a, url := newServer(t)
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	defer ws.Close()

	ws.WriteJSON(request{Agent: a.Name, Kind: "jump"})
	ws.WriteJSON(request{Kind: "start"})
	ws.WriteJSON(request{Agent: a.Name, Kind: "start"})
	stepUntil(t, srv, a.Climb.IsClimbing)
}

func TestClientRejectsSendAfterClose(t *testing.T) {
	_, a, url := newServer(t)
	client := dial(t, url, a.Name)
	client.Close()

	if err := client.Send(climb.RequestStart); !errors.Is(err, authority.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	select {
	case _, ok := <-client.Snapshots():
		if ok {
			for range client.Snapshots() {
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("expected the snapshot channel to close")
	}
}
