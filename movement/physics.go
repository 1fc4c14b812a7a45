package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
)

// PerformMovement simulates a single step of dt seconds and then notifies the extension.
func (b *Base) PerformMovement(dt float32) {
	if dt < game.MinTickTime {
		return
	}

	oldPos, oldVel := b.pos, b.vel
	b.StartNewPhysics(dt, 0)
	if b.ext != nil {
		b.ext.OnMovementUpdated(dt, oldPos, oldVel)
	}
}

// StartNewPhysics runs the physics of the current mode for dt seconds. iterations counts how many
// times the step has already been restarted, which happens when a mode changes mid-step.
func (b *Base) StartNewPhysics(dt float32, iterations int) {
	if dt < game.MinTickTime || iterations >= game.MaxSimulationIterations {
		return
	}

	iterations++
	switch b.mode {
	case ModeWalking:
		b.physWalking(dt, iterations)
	case ModeFalling:
		b.physFalling(dt, iterations)
	case ModeCustom:
		if b.ext != nil {
			b.ext.PhysCustom(dt, iterations)
		}
	}
}

func (b *Base) physWalking(dt float32, iterations int) {
	b.RestorePreAdditiveRootMotionVelocity()
	if !b.hasAnimRootMotion && !b.HasOverrideVelocity() {
		b.vel[1] = 0
		b.CalcVelocity(dt, b.conf.GroundFriction, false, b.conf.BrakingDecelerationWalking)
	}
	b.ApplyRootMotionToVelocity(dt)

	delta := b.vel.Mul(dt)
	if !b.hasAnimRootMotion {
		delta[1] = 0
	}

	rot := b.rot
	if b.orientToMovement && game.Vec3HzDistSqr(b.vel) > 1 {
		rot = game.QuatInterpTo(rot, game.RotationFromForward(mgl32.Vec3{b.vel.X(), 0, b.vel.Z()}), dt, b.conf.RotationRate)
	}

	hit := b.SafeMove(delta, rot)
	if hit.Time < 1 {
		b.HandleImpact(hit)
		normal := hit.Normal
		if !b.IsWalkable(normal) {
			// Walls never push a walking agent up or down.
			normal = game.SafeNormal2D(normal)
		}
		b.SlideAlongSurface(delta, 1-hit.Time, normal)
	}

	if b.mode != ModeWalking {
		return
	}
	floor, ok := b.FindFloor()
	if !ok {
		b.dbg.Notify(game.DebugModeMovement, true, "lost floor at %v", b.pos)
		b.SetMovementMode(ModeFalling, 0)
		return
	}
	if !floor.StartPenetrating && floor.Time > 0 {
		b.pos = floor.Location.Add(game.Up.Mul(hitPullback))
	}
}

func (b *Base) physFalling(dt float32, iterations int) {
	b.RestorePreAdditiveRootMotionVelocity()
	if !b.hasAnimRootMotion && !b.HasOverrideVelocity() {
		hz := b.acceleration().Mul(b.conf.AirControl * dt)
		b.vel = b.vel.Add(hz)
		if limit := b.MaxSpeed(); game.Vec3HzDistSqr(b.vel) > limit*limit {
			clamped := clampLength(mgl32.Vec3{b.vel.X(), 0, b.vel.Z()}, limit)
			b.vel = mgl32.Vec3{clamped.X(), b.vel.Y(), clamped.Z()}
		}
		b.vel = b.vel.Sub(game.Up.Mul(b.conf.Gravity * dt))
	}
	b.ApplyRootMotionToVelocity(dt)

	delta := b.vel.Mul(dt)
	hit := b.SafeMove(delta, b.rot)
	if hit.Time < 1 {
		if b.IsWalkable(hit.Normal) && b.vel.Y() <= 0 {
			b.land(dt*(1-hit.Time), iterations)
			return
		}
		b.HandleImpact(hit)
		b.SlideAlongSurface(delta, 1-hit.Time, hit.Normal)
		if into := b.vel.Dot(hit.Normal); into < 0 {
			b.vel = b.vel.Sub(hit.Normal.Mul(into))
		}
	}

	if b.mode == ModeFalling && b.vel.Y() <= 0 {
		if _, ok := b.FindFloor(); ok {
			b.land(0, iterations)
		}
	}
}

// land switches a falling agent to walking and spends the rest of the step walking.
func (b *Base) land(remaining float32, iterations int) {
	b.dbg.Notify(game.DebugModeMovement, true, "landed at %v", b.pos)
	b.vel[1] = 0
	b.SetMovementMode(ModeWalking, 0)
	b.StartNewPhysics(remaining, iterations)
}
