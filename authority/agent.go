package authority

import (
	"github.com/oomph-ac/oclimb/animation"
	"github.com/oomph-ac/oclimb/climb"
)

// Agent is a simulated agent owned by the authority.
type Agent struct {
	ID   AgentID
	Name string

	Climb *climb.Component
	// Anim is the animation player of the agent, if it has one. It is ticked before the agent moves.
	Anim *animation.Player
	// Driver, if set, is called on the tick goroutine before the agent is stepped.
	Driver func(a *Agent, tick uint64)

	last       Snapshot
	replicated bool
}

// NewAgent returns an agent with an ID derived from its name.
func NewAgent(name string, c *climb.Component, anim *animation.Player) *Agent {
	return &Agent{ID: NewAgentID(name), Name: name, Climb: c, Anim: anim}
}

func (a *Agent) step(dt float32, tick uint64) {
	if a.Driver != nil {
		a.Driver(a, tick)
	}
	if a.Anim != nil {
		a.Anim.Tick(dt)
	}
	a.Climb.Tick(dt)
}

func (a *Agent) snapshot(tick uint64) Snapshot {
	return Snapshot{
		Agent:    a.ID,
		Tick:     tick,
		Normal:   a.Climb.ClimbSurfaceNormal(),
		Climbing: a.Climb.IsClimbing(),
	}
}
