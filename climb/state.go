package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/movement"
)

// RequestClimb sets the climbing intent if a climbable wall is in front of the agent. The mode
// switch happens at the end of the next movement update. A proxy relays the request to the
// authority instead, and only a relay failure is returned.
func (c *Component) RequestClimb() error {
	if c.role != RoleAuthority {
		return c.relay.Send(RequestStart)
	}

	c.hits = c.scanForWalls()
	if c.canStartClimbing() {
		c.dbg.Notify(game.DebugModeClimb, !c.wantsToClimb, "climb requested at %v", c.base.Pos())
		c.wantsToClimb = true
	}
	return nil
}

// CancelClimb clears the climbing intent. A climbing agent stops climbing on its next tick.
func (c *Component) CancelClimb() error {
	if c.role != RoleAuthority {
		return c.relay.Send(RequestCancel)
	}

	c.dbg.Notify(game.DebugModeClimb, c.wantsToClimb, "climb cancelled at %v", c.base.Pos())
	c.wantsToClimb = false
	return nil
}

// Apply runs a relayed request on the authority.
func (c *Component) Apply(kind RequestKind) error {
	switch kind {
	case RequestStart:
		return c.RequestClimb()
	case RequestCancel:
		return c.CancelClimb()
	}
	return nil
}

func (c *Component) canStartClimbing() bool {
	forward := c.base.Forward()
	for _, hit := range c.hits {
		if c.isClimbable(hit, forward) {
			return true
		}
	}
	return false
}

// OnMovementUpdated enters the climbing mode once the intent is set.
func (c *Component) OnMovementUpdated(float32, mgl32.Vec3, mgl32.Vec3) {
	if c.wantsToClimb && !c.IsClimbing() {
		c.base.SetMovementMode(movement.ModeCustom, CustomModeClimbing)
	}
}

// OnMovementModeChanged applies and reverts the side effects of climbing.
func (c *Component) OnMovementModeChanged(prev movement.Mode, prevCustom movement.CustomMode) {
	if c.IsClimbing() {
		c.base.SetOrientRotationToMovement(false)
		c.base.StopMovementImmediately()
		c.base.SetHalfHeight(c.base.Config().HalfHeight - c.conf.ClimbingCollisionShrinkAmount)
		c.dbg.Notify(game.DebugModeClimb, true, "started climbing at %v", c.base.Pos())
	}

	if prev == movement.ModeCustom && prevCustom == CustomModeClimbing {
		c.base.SetOrientRotationToMovement(true)
		c.base.SetRotation(game.UprightRotation(c.base.Rotation()))
		c.base.SetHalfHeight(c.base.Config().HalfHeight)
		c.base.StopMovementImmediately()
		c.dbg.Notify(game.DebugModeClimb, true, "stopped climbing at %v (now %v)", c.base.Pos(), c.base.Mode())
	}
}

// shouldStopClimbing returns true if the climb can no longer continue on the tracked surface.
func (c *Component) shouldStopClimbing() bool {
	return !c.wantsToClimb || c.surface.IsZero() || game.IsVertical(c.surface.Normal)
}

// shouldExitToFloor returns true if the agent is climbing down onto a walkable floor, or if the
// surface it climbs is itself walkable with a floor below.
func (c *Component) shouldExitToFloor() bool {
	pos := c.base.Pos()
	floor, ok := c.base.World().TraceLine(pos, pos.Sub(game.Up.Mul(c.conf.FloorCheckDistance)), c.base.Filter())
	if !ok {
		return false
	}

	if !c.base.IsWalkable(floor.Normal) {
		return false
	}
	downSpeed := c.base.Vel().Dot(floor.Normal.Mul(-1))
	return downSpeed >= c.conf.MaxClimbingSpeed/3 || c.base.IsWalkable(c.surface.Normal)
}

// forceStopClimbing drops the agent into falling and spends the rest of the step there.
func (c *Component) forceStopClimbing(dt float32, iterations int) {
	c.wantsToClimb = false
	c.base.SetMovementMode(movement.ModeFalling, 0)
	c.base.StartNewPhysics(dt, iterations)
}
