package climb

import "github.com/oomph-ac/oclimb/animation"

// Config holds the climbing tunables.
type Config struct {
	// CollisionCapsuleRadius and CollisionCapsuleHalfHeight describe the capsule swept in front
	// of the agent to find walls.
	CollisionCapsuleRadius     float32
	CollisionCapsuleHalfHeight float32
	// MaxHorizontalDegrees is the largest angle between the agent's forward axis and a wall for
	// the wall to be climbable.
	MaxHorizontalDegrees float32
	// ClimbingCollisionShrinkAmount is subtracted from the agent's capsule half height while climbing.
	ClimbingCollisionShrinkAmount float32

	MaxClimbingSpeed            float32
	MaxClimbingAcceleration     float32
	BrakingDecelerationClimbing float32
	ClimbingRotationSpeed       float32
	ClimbingSnapSpeed           float32
	// DistanceFromSurface is the standoff the agent is kept at from the surface it climbs.
	DistanceFromSurface float32
	// FloorCheckDistance is how far below the agent a floor is looked for while climbing.
	FloorCheckDistance float32

	// ClimbUpVerticalOffset and ClimbUpHorizontalOffset place the destination of a ledge mantle
	// relative to the agent.
	ClimbUpVerticalOffset   float32
	ClimbUpHorizontalOffset float32
}

// DefaultConfig returns the default climbing tunables.
func DefaultConfig() Config {
	return Config{
		CollisionCapsuleRadius:        50,
		CollisionCapsuleHalfHeight:    72,
		MaxHorizontalDegrees:          25,
		ClimbingCollisionShrinkAmount: 0,
		MaxClimbingSpeed:              120,
		MaxClimbingAcceleration:       380,
		BrakingDecelerationClimbing:   550,
		ClimbingRotationSpeed:         6,
		ClimbingSnapSpeed:             4,
		DistanceFromSurface:           45,
		FloorCheckDistance:            100,
		ClimbUpVerticalOffset:         160,
		ClimbUpHorizontalOffset:       80,
	}
}

// mantleClearance is how much higher than the mantle destination the mantle montage lifts the
// agent, so that it clears the ledge before moving over it.
const mantleClearance = 10

// MantleMontage returns a ledge mantle montage that carries the agent to the destination the
// ledge checks validate.
func MantleMontage(name string, conf Config) *animation.Montage {
	return animation.LedgeClimb(name, conf.ClimbUpVerticalOffset+mantleClearance, conf.ClimbUpHorizontalOffset)
}
