package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
)

// brakeToStopVelocity is the speed below which braking brings the agent to a full stop.
const brakeToStopVelocity = 10

// acceleration returns the acceleration requested by the input. Walking and falling agents can
// only accelerate horizontally.
func (b *Base) acceleration() mgl32.Vec3 {
	input := b.input
	if b.mode == ModeWalking || b.mode == ModeFalling {
		input[1] = 0
	}
	return input.Mul(b.MaxAcceleration())
}

// CalcVelocity integrates the input acceleration into the velocity for a step of dt seconds,
// applying friction and braking. It does nothing while animation root motion drives the agent.
func (b *Base) CalcVelocity(dt, friction float32, fluid bool, brakingDecel float32) {
	if b.hasAnimRootMotion || dt < game.MinTickTime {
		return
	}

	var (
		maxSpeed  = b.MaxSpeed()
		accel     = b.acceleration()
		zeroAccel = accel.LenSqr() <= 1e-8
		overMax   = b.vel.LenSqr() > maxSpeed*maxSpeed*1.0201
	)
	friction = math32.Max(0, friction)

	if zeroAccel || overMax {
		oldVel := b.vel
		b.applyVelocityBraking(dt, friction, math32.Max(0, brakingDecel))

		// Braking must not undercut the speed limit while still accelerating the same way.
		if overMax && !zeroAccel && b.vel.LenSqr() < maxSpeed*maxSpeed && oldVel.Dot(accel) > 0 {
			b.vel = game.SafeNormal(oldVel).Mul(maxSpeed)
		}
	} else {
		// Turn the velocity toward the acceleration, faster the more friction there is.
		accelDir := game.SafeNormal(accel)
		speed := b.vel.Len()
		b.vel = b.vel.Sub(b.vel.Sub(accelDir.Mul(speed)).Mul(math32.Min(dt*friction, 1)))
	}

	if fluid {
		b.vel = b.vel.Mul(1 - math32.Min(friction*dt, 1))
	}

	if !zeroAccel {
		limit := maxSpeed
		if overMax {
			limit = b.vel.Len()
		}
		b.vel = clampLength(b.vel.Add(accel.Mul(dt)), limit)
	}
}

func (b *Base) applyVelocityBraking(dt, friction, brakingDecel float32) {
	if b.vel.LenSqr() <= 1e-8 || dt < game.MinTickTime || (friction == 0 && brakingDecel == 0) {
		return
	}

	oldVel := b.vel
	reverse := game.SafeNormal(b.vel).Mul(-brakingDecel)
	b.vel = b.vel.Add(b.vel.Mul(-friction).Add(reverse).Mul(dt))

	if b.vel.Dot(oldVel) <= 0 || b.vel.LenSqr() < brakeToStopVelocity*brakeToStopVelocity {
		b.vel = mgl32.Vec3{}
	}
}

// SetAnimRootMotion makes the given velocity drive the agent until ClearAnimRootMotion is called.
func (b *Base) SetAnimRootMotion(vel mgl32.Vec3) {
	b.animRootMotion = vel
	b.hasAnimRootMotion = true
}

// ClearAnimRootMotion stops animation root motion from driving the agent.
func (b *Base) ClearAnimRootMotion() {
	b.animRootMotion = mgl32.Vec3{}
	b.hasAnimRootMotion = false
}

// HasAnimRootMotion returns true if an animation currently drives the agent.
func (b *Base) HasAnimRootMotion() bool {
	return b.hasAnimRootMotion
}

// SetRootMotionSource sets the root motion source applied on top of integrated movement. A nil
// source removes it.
func (b *Base) SetRootMotionSource(src *RootMotion) {
	b.source = src
}

// HasOverrideVelocity returns true if a root motion source replaces the integrated velocity.
func (b *Base) HasOverrideVelocity() bool {
	return b.source != nil && b.source.Override
}

// RestorePreAdditiveRootMotionVelocity removes additive root motion applied during the previous step.
func (b *Base) RestorePreAdditiveRootMotionVelocity() {
	if !b.appliedAdditive {
		return
	}
	b.vel = b.preAdditiveVel
	b.appliedAdditive = false
}

// ApplyRootMotionToVelocity applies animation root motion and root motion sources to the velocity.
func (b *Base) ApplyRootMotionToVelocity(float32) {
	if b.hasAnimRootMotion {
		b.vel = b.animRootMotion
		return
	}
	if b.source == nil {
		return
	}
	if b.source.Override {
		b.vel = b.source.Velocity
		return
	}
	b.preAdditiveVel = b.vel
	b.appliedAdditive = true
	b.vel = b.vel.Add(b.source.Velocity)
}

func clampLength(v mgl32.Vec3, limit float32) mgl32.Vec3 {
	if limit <= 0 {
		return mgl32.Vec3{}
	}
	if lenSqr := v.LenSqr(); lenSqr > limit*limit {
		return v.Mul(limit / math32.Sqrt(lenSqr))
	}
	return v
}
