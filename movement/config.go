package movement

import "github.com/oomph-ac/oclimb/game"

// Config holds the tunables of the base simulation.
type Config struct {
	// Radius and HalfHeight describe the agent's collision capsule.
	Radius     float32
	HalfHeight float32
	// EyeHeight is the height of the agent's eyes above its centre.
	EyeHeight float32

	MaxWalkSpeed    float32
	MaxAcceleration float32

	Gravity    float32
	AirControl float32

	GroundFriction             float32
	BrakingDecelerationWalking float32
	BrakingDecelerationFalling float32

	// WalkableFloorAngle is the steepest slope, in degrees, the agent can stand on.
	WalkableFloorAngle float32
	// RotationRate is the interpolation speed used when orienting rotation to movement.
	RotationRate float32
}

// DefaultConfig returns the default base simulation tunables.
func DefaultConfig() Config {
	return Config{
		Radius:     42,
		HalfHeight: 96,
		EyeHeight:  64,

		MaxWalkSpeed:    600,
		MaxAcceleration: 2048,

		Gravity:    980,
		AirControl: 0.35,

		GroundFriction:             8,
		BrakingDecelerationWalking: 2048,
		BrakingDecelerationFalling: 0,

		WalkableFloorAngle: game.DefaultWalkableFloorAngle,
		RotationRate:       10,
	}
}
