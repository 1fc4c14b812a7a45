package climb

import "github.com/oomph-ac/oclimb/game"

// physClimbing is the physics step of the climbing mode.
func (c *Component) physClimbing(dt float32, iterations int) {
	if dt < game.MinTickTime {
		return
	}

	c.surface = c.computeSurfaceInfo(c.hits)
	if c.shouldStopClimbing() || c.shouldExitToFloor() {
		c.dbg.Notify(game.DebugModeClimb, true, "leaving climb (intent=%v normal=%v)", c.wantsToClimb, c.surface.Normal)
		c.forceStopClimbing(dt, iterations)
		return
	}

	b := c.base
	rootMotion := b.HasAnimRootMotion()

	b.RestorePreAdditiveRootMotionVelocity()
	if !rootMotion && !b.HasOverrideVelocity() {
		b.CalcVelocity(dt, 0, false, c.conf.BrakingDecelerationClimbing)
	}
	b.ApplyRootMotionToVelocity(dt)

	oldPos := b.Pos()
	delta := b.Vel().Mul(dt)

	rot := b.Rotation()
	if !rootMotion {
		rot = game.QuatInterpTo(rot, game.RotationFromForward(c.surface.Normal.Mul(-1)), dt, c.conf.ClimbingRotationSpeed)
	}
	if hit := b.SafeMove(delta, rot); hit.Time < 1 {
		b.HandleImpact(hit)
		b.SlideAlongSurface(delta, 1-hit.Time, hit.Normal)
	}

	if c.tryClimbUpLedge() {
		c.dbg.Notify(game.DebugModeLedge, true, "mantling from %v", b.Pos())
	}

	if !b.HasAnimRootMotion() && !b.HasOverrideVelocity() {
		b.SetVel(b.Pos().Sub(oldPos).Mul(1 / dt))
	}

	c.snapToClimbingSurface(dt)
}

// snapToClimbingSurface drifts the agent toward the standoff distance from the tracked surface.
func (c *Component) snapToClimbingSurface(dt float32) {
	b := c.base
	diff := game.ProjectOnto(c.surface.Anchor.Sub(b.Pos()), b.Forward())
	offset := c.surface.Normal.Mul(-(diff.Len() - c.conf.DistanceFromSurface))
	b.MoveComponent(offset.Mul(c.conf.ClimbingSnapSpeed*dt), b.Rotation(), true)
}
