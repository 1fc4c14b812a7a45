package authority

import (
	"context"
	"strconv"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/oclimb/assert"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/oerror"
	"github.com/oomph-ac/oclimb/worker"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Server is the authoritative simulation. It applies relayed requests, steps every agent and
// replicates their climbing state to observers.
type Server struct {
	log       *logrus.Logger
	channel   *Channel
	tolerance float32
	pool      *worker.Pool

	mu        deadlock.Mutex
	tick      uint64
	agents    *orderedmap.OrderedMap[AgentID, *Agent]
	lastSeq   map[SourceID]uint64
	observers map[int]Observer
	nextObs   int
}

// NewServer returns a server that applies the requests of the channel. Snapshots are replicated
// when the climbing normal moves by more than tolerance or the climbing state changes.
func NewServer(log *logrus.Logger, channel *Channel, tolerance float32) *Server {
	assert.IsTrue(channel != nil, "server requires a request channel")
	if log == nil {
		log = game.NopLogger()
	}
	return &Server{
		log:       log,
		channel:   channel,
		tolerance: tolerance,
		agents:    orderedmap.NewOrderedMap[AgentID, *Agent](),
		lastSeq:   make(map[SourceID]uint64),
		observers: make(map[int]Observer),
	}
}

// SetPool makes the server step agents in parallel on the pool. Agents of a single server must
// then not share any state other than a read-only scene.
func (s *Server) SetPool(p *worker.Pool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = p
}

func (s *Server) Channel() *Channel {
	return s.channel
}

// Tick returns the amount of ticks simulated so far.
func (s *Server) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// AddAgent registers an agent with the server.
func (s *Server) AddAgent(a *Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agents.Get(a.ID); ok {
		return oerror.New("%w: %s", ErrDuplicateAgent, a.Name)
	}
	s.agents.Set(a.ID, a)
	s.log.WithField("agent", a.Name).Info("agent added")
	return nil
}

// RemoveAgent removes an agent from the server.
func (s *Server) RemoveAgent(id AgentID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.agents.Get(id); ok {
		s.agents.Delete(id)
		s.log.WithField("agent", a.Name).Info("agent removed")
	}
}

// Agent returns the agent with the given ID.
func (s *Server) Agent(id AgentID) (*Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agents.Get(id)
}

// AddObserver subscribes an observer to replicated snapshots and sends it the latest snapshot of
// every agent. The returned function unsubscribes it.
func (s *Server) AddObserver(o Observer) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	for el := s.agents.Front(); el != nil; el = el.Next() {
		if el.Value.replicated {
			o.Observe(el.Value.last)
		}
	}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Step simulates a single tick of dt seconds.
func (s *Server) Step(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	for _, req := range s.channel.drain() {
		if err := s.apply(req); err != nil {
			s.log.WithFields(logrus.Fields{
				"source": req.Source,
				"seq":    req.Seq,
				"kind":   req.Kind.String(),
			}).Warnf("dropped request: %v", err)
		}
	}

	if s.pool != nil {
		for el := s.agents.Front(); el != nil; el = el.Next() {
			a := el.Value
			s.pool.Submit(func() {
				a.step(dt, s.tick)
			})
		}
		s.pool.Wait()
	} else {
		for el := s.agents.Front(); el != nil; el = el.Next() {
			el.Value.step(dt, s.tick)
		}
	}

	s.replicate()
}

// apply runs a relayed request on its agent. Requests of a source must arrive in sequence.
func (s *Server) apply(req Request) error {
	if last := s.lastSeq[req.Source]; req.Seq <= last {
		return oerror.New("%w: got %d after %d", ErrOutOfOrder, req.Seq, last)
	}
	s.lastSeq[req.Source] = req.Seq

	a, ok := s.agents.Get(req.Agent)
	if !ok {
		return oerror.New("%w: %x", ErrUnknownAgent, uint64(req.Agent))
	}
	s.log.WithFields(logrus.Fields{"agent": a.Name, "kind": req.Kind.String()}).Debug("applying request")
	return a.Climb.Apply(req.Kind)
}

func (s *Server) replicate() {
	for el := s.agents.Front(); el != nil; el = el.Next() {
		a := el.Value
		snap := a.snapshot(s.tick)
		if a.replicated && !snap.changed(a.last, s.tolerance) {
			continue
		}
		if !a.replicated || snap.Climbing != a.last.Climbing {
			s.log.WithFields(logrus.Fields{"agent": a.Name, "climbing": snap.Climbing}).Info("climbing state changed")
		}
		a.last, a.replicated = snap, true
		for _, o := range s.observers {
			o.Observe(snap)
		}
	}
}

// Run steps the server at the given tick rate until the context is cancelled. A panic during a
// tick is reported to sentry and returned as an error.
func (s *Server) Run(ctx context.Context, tickRate int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("tick", strconv.FormatUint(s.Tick(), 10))
			})
			hub.Recover(r)
			hub.Flush(time.Second * 5)
			err = oerror.New("simulation crashed: %v", r)
		}
	}()

	interval := time.Second / time.Duration(max(tickRate, 1))
	dt := float32(interval.Seconds())

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Step(dt)
		}
	}
}
