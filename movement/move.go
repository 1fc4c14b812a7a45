package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/world"
)

const (
	// hitPullback is how far a blocked move stops short of the surface it hit.
	hitPullback = 0.01
	// penetrationPullback is the extra distance added when pushing out of an initial overlap.
	penetrationPullback = 0.125
	// maxFloorDist is how far below the capsule a floor may be while still being stood on.
	maxFloorDist = 2.4
)

// noHit is returned by moves that were not blocked.
var noHit = world.Hit{Time: 1}

// MoveComponent moves the agent by delta and sets its rotation. If sweep is true the move stops
// at the first blocking surface, which is returned. Unswept moves always report noHit.
func (b *Base) MoveComponent(delta mgl32.Vec3, rot mgl32.Quat, sweep bool) world.Hit {
	if !sweep {
		b.pos = b.pos.Add(delta)
		b.SetRotation(rot)
		return noHit
	}
	return b.sweepMove(delta, rot)
}

// SafeMove performs a swept move. If the agent starts out overlapping a surface it is pushed out
// along the hit normal and the move is retried once.
func (b *Base) SafeMove(delta mgl32.Vec3, rot mgl32.Quat) world.Hit {
	hit := b.sweepMove(delta, rot)
	if hit.StartPenetrating {
		b.dbg.Notify(game.DebugModeMovement, true, "resolving %.3f of penetration along %v", hit.Penetration, hit.Normal)
		b.pos = b.pos.Add(hit.Normal.Mul(hit.Penetration + penetrationPullback))
		hit = b.sweepMove(delta, rot)
	}
	return hit
}

func (b *Base) sweepMove(delta mgl32.Vec3, rot mgl32.Quat) world.Hit {
	b.SetRotation(rot)
	if delta.LenSqr() <= 1e-8 {
		return noHit
	}

	start := b.pos
	hit, ok := b.world.SweepSingle(b.Shape(), start, start.Add(delta), b.rot, b.Filter())
	if !ok {
		b.pos = start.Add(delta)
		return noHit
	}
	if hit.StartPenetrating {
		hit.Time = 0
		return hit
	}

	hit.Time = game.ClampFloat(hit.Time-hitPullback/delta.Len(), 0, 1)
	b.pos = start.Add(delta.Mul(hit.Time))
	return hit
}

// SlideAlongSurface moves the agent along a blocking surface with the given normal. time is the
// fraction of delta still left to travel. It returns the fraction of delta actually travelled.
func (b *Base) SlideAlongSurface(delta mgl32.Vec3, time float32, normal mgl32.Vec3) float32 {
	slide := delta.Sub(normal.Mul(delta.Dot(normal))).Mul(time)
	if slide.Dot(delta) <= 0 {
		return 0
	}

	hit := b.SafeMove(slide, b.rot)
	if hit.Time >= 1 {
		return time
	}
	b.HandleImpact(hit)

	// Blocked again, so follow the crease between both surfaces.
	crease := game.SafeNormal(normal.Cross(hit.Normal))
	remaining := slide.Mul(1 - hit.Time)
	if adjusted := crease.Mul(remaining.Dot(crease)); adjusted.Dot(delta) > 0 {
		second := b.SafeMove(adjusted, b.rot)
		return time * (hit.Time + (1-hit.Time)*second.Time)
	}
	return time * hit.Time
}

// HandleImpact reports a blocking hit.
func (b *Base) HandleImpact(hit world.Hit) {
	b.dbg.Notify(game.DebugModeMovement, true, "impact with %d at %v (normal=%v t=%.3f)", hit.Collider, hit.ImpactPoint, hit.Normal, hit.Time)
	if b.OnImpact != nil {
		b.OnImpact(hit)
	}
}

// FindFloor looks for a walkable floor directly under the agent.
func (b *Base) FindFloor() (world.Hit, bool) {
	hit, ok := b.world.SweepSingle(b.Shape(), b.pos, b.pos.Sub(game.Up.Mul(maxFloorDist)), b.rot, b.Filter())
	if !ok || !b.IsWalkable(hit.Normal) {
		return world.Hit{}, false
	}
	return hit, true
}
