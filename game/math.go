package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// Up is the world up axis.
	Up = mgl32.Vec3{0, 1, 0}
	// Forward is the local forward axis of an unrotated agent.
	Forward = mgl32.Vec3{0, 0, 1}
)

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}

// SafeNormal returns v normalised, or the zero vector if v is too short to normalise.
func SafeNormal(v mgl32.Vec3) mgl32.Vec3 {
	lenSqr := v.LenSqr()
	if lenSqr <= 1e-8 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / math32.Sqrt(lenSqr))
}

// SafeNormal2D returns the horizontal projection of v normalised, or the zero vector when the
// projection is degenerate.
func SafeNormal2D(v mgl32.Vec3) mgl32.Vec3 {
	return SafeNormal(mgl32.Vec3{v.X(), 0, v.Z()})
}

// ProjectOnto projects v onto the given axis.
func ProjectOnto(v, axis mgl32.Vec3) mgl32.Vec3 {
	lenSqr := axis.LenSqr()
	if lenSqr <= 1e-8 {
		return mgl32.Vec3{}
	}
	return axis.Mul(v.Dot(axis) / lenSqr)
}

// IsVertical reports whether the unit vector n is parallel (or anti-parallel) to the up axis.
// A zero vector is never vertical.
func IsVertical(n mgl32.Vec3) bool {
	return math32.Abs(n.Dot(Up)) >= ParallelCosineThreshold
}

// AngleBetween returns the angle between two unit vectors in degrees.
func AngleBetween(a, b mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Acos(ClampFloat(a.Dot(b), -1, 1)))
}

// WalkableFloorY returns the minimum up component of a walkable floor normal for the angle given
// in degrees.
func WalkableFloorY(angle float32) float32 {
	return math32.Cos(mgl32.DegToRad(angle))
}

// RotationFromForward returns the rotation that turns the local forward axis onto dir while
// keeping the local up axis as close to world up as possible.
func RotationFromForward(dir mgl32.Vec3) mgl32.Quat {
	forward := SafeNormal(dir)
	if forward.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}

	ref := Up
	if math32.Abs(forward.Dot(Up)) > 0.999 {
		ref = Forward
	}
	right := SafeNormal(ref.Cross(forward))
	up := forward.Cross(right)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, up, forward).Mat4()).Normalize()
}

// QuatInterpTo moves current toward target at the given angular speed, taking the short way
// around. A non-positive speed snaps straight to the target.
func QuatInterpTo(current, target mgl32.Quat, dt, speed float32) mgl32.Quat {
	if speed <= 0 || current.ApproxEqualThreshold(target, 1e-6) {
		return target
	}
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	alpha := ClampFloat(dt*speed, 0, 1)
	return mgl32.QuatSlerp(current, target, alpha).Normalize()
}

// Yaw returns the heading of the rotation around the up axis, in radians.
func Yaw(q mgl32.Quat) float32 {
	forward := q.Rotate(Forward)
	if Vec3HzDistSqr(forward) <= 1e-8 {
		// Facing straight up or down, so the heading lives in the up axis instead.
		up := q.Rotate(Up)
		if forward.Y() > 0 {
			up = up.Mul(-1)
		}
		return math32.Atan2(up.X(), up.Z())
	}
	return math32.Atan2(forward.X(), forward.Z())
}

// UprightRotation returns q with its pitch and roll removed, keeping its yaw.
func UprightRotation(q mgl32.Quat) mgl32.Quat {
	return mgl32.QuatRotate(Yaw(q), Up)
}

// IsUpright reports whether the rotation has no pitch or roll.
func IsUpright(q mgl32.Quat) bool {
	return q.Rotate(Up).Dot(Up) >= 1-1e-5
}
