package authority

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/climb"
	"github.com/sasha-s/go-deadlock"
)

// Snapshot is the replicated climbing state of an agent.
type Snapshot struct {
	Agent    AgentID    `json:"agent"`
	Tick     uint64     `json:"tick"`
	Normal   mgl32.Vec3 `json:"normal"`
	Climbing bool       `json:"climbing"`
}

// changed returns true if s differs materially from prev.
func (s Snapshot) changed(prev Snapshot, tolerance float32) bool {
	return s.Climbing != prev.Climbing || s.Normal.Sub(prev.Normal).Len() > tolerance
}

// Observer receives snapshots replicated by the authority. Observe is called on the tick goroutine.
type Observer interface {
	Observe(s Snapshot)
}

// ObserverFunc is an Observer implemented by a function.
type ObserverFunc func(s Snapshot)

func (f ObserverFunc) Observe(s Snapshot) {
	f(s)
}

// Replica mirrors replicated state into proxy components.
type Replica struct {
	mu        deadlock.RWMutex
	snapshots map[AgentID]Snapshot
	proxies   map[AgentID]*climb.Component
}

func NewReplica() *Replica {
	return &Replica{
		snapshots: make(map[AgentID]Snapshot),
		proxies:   make(map[AgentID]*climb.Component),
	}
}

// Bind makes the proxy component mirror the state of the agent. Any state already replicated is
// applied straight away.
func (r *Replica) Bind(id AgentID, proxy *climb.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.proxies[id] = proxy
	if s, ok := r.snapshots[id]; ok {
		proxy.Replicate(s.Normal, s.Climbing)
	}
}

func (r *Replica) Observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.snapshots[s.Agent]; ok && prev.Tick > s.Tick {
		return
	}
	r.snapshots[s.Agent] = s
	if proxy, ok := r.proxies[s.Agent]; ok {
		proxy.Replicate(s.Normal, s.Climbing)
	}
}

// Snapshot returns the latest snapshot of the agent.
func (r *Replica) Snapshot(id AgentID) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.snapshots[id]
	return s, ok
}
