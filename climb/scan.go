package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/world"
)

const (
	// scanForwardOffset is how far ahead of the agent the wall scan starts.
	scanForwardOffset = 20
	// scanLength is the length of the wall scan. Zero-length sweeps never report contacts.
	scanLength = 1
	// facingTraceLength is the base length of the eye height trace confirming a wall.
	facingTraceLength = 80
	// maxSteepnessScale bounds how much longer the confirming trace gets for inclined walls.
	maxSteepnessScale = 5
)

// scanForWalls returns every contact of the climbing capsule just in front of the agent.
func (c *Component) scanForWalls() []world.Hit {
	var (
		forward = c.base.Forward()
		start   = c.base.Pos().Add(forward.Mul(scanForwardOffset))
		end     = start.Add(forward.Mul(scanLength))
		shape   = world.Capsule(c.conf.CollisionCapsuleRadius, c.conf.CollisionCapsuleHalfHeight)
	)
	hits := c.base.World().Sweep(shape, start, end, mgl32.QuatIdent(), c.base.Filter())
	c.dbg.Notify(game.DebugModeScan, len(hits) > 0, "scan found %d contacts", len(hits))
	return hits
}

// isClimbable returns true if the contact is a wall the agent, facing forward, may start climbing.
func (c *Component) isClimbable(hit world.Hit, forward mgl32.Vec3) bool {
	if game.IsVertical(hit.Normal) {
		// Floors and ceilings.
		return false
	}

	horizontalNormal := game.SafeNormal2D(hit.Normal)
	if horizontalNormal.LenSqr() == 0 {
		return false
	}
	horizontalDot := forward.Dot(horizontalNormal.Mul(-1))
	if game.AngleBetween(forward, horizontalNormal.Mul(-1)) > c.conf.MaxHorizontalDegrees {
		c.dbg.Notify(game.DebugModeScan, true, "contact at %v rejected: facing dot %.3f", hit.ImpactPoint, horizontalDot)
		return false
	}

	steepness := hit.Normal.Dot(horizontalNormal)
	return c.isFacingSurface(steepness)
}

// isFacingSurface confirms a wall with a trace from eye height. Inclined walls recede from the
// eyes, so the trace grows longer the less steep the wall is.
func (c *Component) isFacingSurface(steepness float32) bool {
	scale := 1 + (1-game.ClampFloat(steepness, 0, 1))*maxSteepnessScale
	return c.eyeHeightTrace(facingTraceLength * scale)
}

// eyeHeightTrace traces forward from the agent's eyes and returns true if anything was hit.
func (c *Component) eyeHeightTrace(distance float32) bool {
	eyeHeight := c.base.EyeHeight()
	if c.IsClimbing() {
		eyeHeight += c.conf.ClimbingCollisionShrinkAmount
	}

	start := c.base.Pos().Add(c.base.UpVector().Mul(eyeHeight))
	_, ok := c.base.World().TraceLine(start, start.Add(c.base.Forward().Mul(distance)), c.base.Filter())
	return ok
}
