package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
)

const (
	// edgeTraceRadiusScale scales the agent radius into the length of the trace finding an edge.
	edgeTraceRadiusScale = 2.5
	// ledgeFloorProbeLength is how far below a mantle destination a floor is looked for.
	ledgeFloorProbeLength = 250
)

// tryClimbUpLedge starts a ledge mantle if the agent climbs up past the top of its wall and there
// is room to stand above it. It returns true if a mantle was started.
func (c *Component) tryClimbUpLedge() bool {
	if c.anim == nil || c.montage == nil || c.anim.IsPlaying(c.montage) {
		return false
	}

	upSpeed := c.base.Vel().Dot(c.base.UpVector())
	if upSpeed < c.conf.MaxClimbingSpeed/10 {
		return false
	}
	if !c.hasReachedEdge() || !c.canMoveToLedgeClimbLocation() {
		return false
	}

	if c.anim.Play(c.montage) <= 0 {
		return false
	}
	c.base.SetRotation(game.UprightRotation(c.base.Rotation()))
	c.mantling = true
	return true
}

// hasReachedEdge returns true if there is nothing ahead of the agent's eyes.
func (c *Component) hasReachedEdge() bool {
	return !c.eyeHeightTrace(c.base.Radius() * edgeTraceRadiusScale)
}

// canMoveToLedgeClimbLocation returns true if the mantle destination has a walkable floor and the
// agent fits through the path over the edge to it.
func (c *Component) canMoveToLedgeClimbLocation() bool {
	var (
		b          = c.base
		horizontal = b.Forward().Mul(c.conf.ClimbUpHorizontalOffset)
		vertical   = game.Up.Mul(c.conf.ClimbUpVerticalOffset)
		check      = b.Pos().Add(horizontal).Add(vertical)
	)
	if !c.isLocationWalkable(check) {
		c.dbg.Notify(game.DebugModeLedge, true, "no walkable floor at mantle destination %v", check)
		return false
	}

	_, blocked := b.World().SweepSingle(b.Shape(), check.Sub(horizontal), check, b.Rotation(), b.Filter())
	c.dbg.Notify(game.DebugModeLedge, blocked, "path to mantle destination %v is blocked", check)
	return !blocked
}

func (c *Component) isLocationWalkable(pos mgl32.Vec3) bool {
	floor, ok := c.base.World().TraceLine(pos, pos.Sub(game.Up.Mul(ledgeFloorProbeLength)), c.base.Filter())
	return ok && c.base.IsWalkable(floor.Normal)
}
