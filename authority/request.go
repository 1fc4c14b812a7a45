package authority

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/oomph-ac/oclimb/climb"
	"github.com/sasha-s/go-deadlock"
	"github.com/zeebo/xxh3"
)

var (
	ErrClosed         = errors.New("channel closed")
	ErrOutOfOrder     = errors.New("request out of order")
	ErrUnknownAgent   = errors.New("unknown agent")
	ErrDuplicateAgent = errors.New("agent already registered")
)

// AgentID identifies an agent across the authority and its proxies.
type AgentID uint64

// NewAgentID returns the ID of the agent with the given name.
func NewAgentID(name string) AgentID {
	return AgentID(xxh3.HashString(name))
}

// SourceID identifies a proxy sending requests.
type SourceID uint64

// Request is a climbing request relayed from a proxy. Seq increases by one with every request
// of the same source.
type Request struct {
	Source SourceID
	Agent  AgentID
	Kind   climb.RequestKind
	Seq    uint64
}

// Channel is a reliable, ordered, in-process relay from proxies to the authority.
type Channel struct {
	requests chan Request
	closed   chan struct{}
	once     sync.Once
	sources  atomic.Uint64
}

// NewChannel returns a channel that buffers up to size requests before Send blocks.
func NewChannel(size int) *Channel {
	return &Channel{
		requests: make(chan Request, size),
		closed:   make(chan struct{}),
	}
}

// Relay returns a new request source relaying requests for the given agent.
func (c *Channel) Relay(agent AgentID) *Relay {
	return &Relay{ch: c, source: SourceID(c.sources.Add(1)), agent: agent}
}

func (c *Channel) send(req Request) error {
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}
	select {
	case c.requests <- req:
		return nil
	case <-c.closed:
		return ErrClosed
	}
}

// drain returns every pending request in arrival order without blocking.
func (c *Channel) drain() []Request {
	var reqs []Request
	for {
		select {
		case req := <-c.requests:
			reqs = append(reqs, req)
		default:
			return reqs
		}
	}
}

// Close closes the channel. Pending requests can still be drained, new ones are rejected.
func (c *Channel) Close() {
	c.once.Do(func() {
		close(c.closed)
	})
}

// Relay is a single request source on a Channel. It implements climb.Relay.
type Relay struct {
	ch     *Channel
	source SourceID
	agent  AgentID

	mu  deadlock.Mutex
	seq uint64
}

// Source returns the source ID of the relay.
func (r *Relay) Source() SourceID {
	return r.source
}

// Send relays a request to the authority.
func (r *Relay) Send(kind climb.RequestKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req := Request{Source: r.source, Agent: r.agent, Kind: kind, Seq: r.seq + 1}
	if err := r.ch.send(req); err != nil {
		return err
	}
	r.seq++
	return nil
}
