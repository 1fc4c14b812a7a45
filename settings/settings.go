package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/pelletier/go-toml"
)

var (
	ErrExists   = errors.New("settings file already exists")
	ErrNotFound = errors.New("settings file doesn't exist")
)

// Settings contains everything that can be configured for the simulator.
type Settings struct {
	Climbing struct {
		CollisionCapsuleRadius        float32
		CollisionCapsuleHalfHeight    float32
		MaxHorizontalDegrees          float32
		ClimbingCollisionShrinkAmount float32
		MaxClimbingSpeed              float32
		MaxClimbingAcceleration       float32
		BrakingDecelerationClimbing   float32
		ClimbingRotationSpeed         float32
		ClimbingSnapSpeed             float32
		DistanceFromSurface           float32
		FloorCheckDistance            float32
		ClimbUpVerticalOffset         float32
		ClimbUpHorizontalOffset       float32
		// LedgeClimbMontage is the name of the montage played to mantle ledges. Leaving it empty
		// disables mantling.
		LedgeClimbMontage string
	}
	Agent struct {
		Radius     float32
		HalfHeight float32
		EyeHeight  float32
	}
	Movement struct {
		MaxWalkSpeed               float32
		MaxAcceleration            float32
		Gravity                    float32
		AirControl                 float32
		WalkableFloorAngle         float32
		GroundFriction             float32
		BrakingDecelerationWalking float32
	}
	Server struct {
		// TickRate is the amount of simulation steps per second.
		TickRate int
		// RelayAddress is the address the websocket relay listens on. Leaving it empty disables it.
		RelayAddress string
		// ReplicationTolerance is how far the climbing normal must move before it's replicated again.
		ReplicationTolerance float32
		// Stats enables the runtime statistics viewer.
		Stats bool
		// LogLevel is the logrus level logged at.
		LogLevel string
		// Debug lists the debug modes that are enabled.
		Debug []string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}

	c := climb.DefaultConfig()
	s.Climbing.CollisionCapsuleRadius = c.CollisionCapsuleRadius
	s.Climbing.CollisionCapsuleHalfHeight = c.CollisionCapsuleHalfHeight
	s.Climbing.MaxHorizontalDegrees = c.MaxHorizontalDegrees
	s.Climbing.ClimbingCollisionShrinkAmount = c.ClimbingCollisionShrinkAmount
	s.Climbing.MaxClimbingSpeed = c.MaxClimbingSpeed
	s.Climbing.MaxClimbingAcceleration = c.MaxClimbingAcceleration
	s.Climbing.BrakingDecelerationClimbing = c.BrakingDecelerationClimbing
	s.Climbing.ClimbingRotationSpeed = c.ClimbingRotationSpeed
	s.Climbing.ClimbingSnapSpeed = c.ClimbingSnapSpeed
	s.Climbing.DistanceFromSurface = c.DistanceFromSurface
	s.Climbing.FloorCheckDistance = c.FloorCheckDistance
	s.Climbing.ClimbUpVerticalOffset = c.ClimbUpVerticalOffset
	s.Climbing.ClimbUpHorizontalOffset = c.ClimbUpHorizontalOffset
	s.Climbing.LedgeClimbMontage = "ledge_climb"

	m := movement.DefaultConfig()
	s.Agent.Radius = m.Radius
	s.Agent.HalfHeight = m.HalfHeight
	s.Agent.EyeHeight = m.EyeHeight

	s.Movement.MaxWalkSpeed = m.MaxWalkSpeed
	s.Movement.MaxAcceleration = m.MaxAcceleration
	s.Movement.Gravity = m.Gravity
	s.Movement.AirControl = m.AirControl
	s.Movement.WalkableFloorAngle = m.WalkableFloorAngle
	s.Movement.GroundFriction = m.GroundFriction
	s.Movement.BrakingDecelerationWalking = m.BrakingDecelerationWalking

	s.Server.TickRate = 60
	s.Server.RelayAddress = ":19133"
	s.Server.ReplicationTolerance = 0.01
	s.Server.LogLevel = "info"
	return s
}

// Clamp keeps every climbing tunable within its documented range.
func (s *Settings) Clamp() {
	c := &s.Climbing
	c.MaxHorizontalDegrees = game.ClampFloat(c.MaxHorizontalDegrees, 1, 75)
	c.ClimbingCollisionShrinkAmount = game.ClampFloat(c.ClimbingCollisionShrinkAmount, 0, 80)
	c.MaxClimbingSpeed = game.ClampFloat(c.MaxClimbingSpeed, 10, 500)
	c.MaxClimbingAcceleration = game.ClampFloat(c.MaxClimbingAcceleration, 10, 2000)
	c.BrakingDecelerationClimbing = game.ClampFloat(c.BrakingDecelerationClimbing, 0, 3000)
	c.ClimbingRotationSpeed = game.ClampFloat(c.ClimbingRotationSpeed, 1, 12)
	c.ClimbingSnapSpeed = game.ClampFloat(c.ClimbingSnapSpeed, 0, 60)
	c.DistanceFromSurface = game.ClampFloat(c.DistanceFromSurface, 0, 80)
	c.FloorCheckDistance = game.ClampFloat(c.FloorCheckDistance, 1, 500)
	c.ClimbUpVerticalOffset = game.ClampFloat(c.ClimbUpVerticalOffset, 0, 200)
	c.ClimbUpHorizontalOffset = game.ClampFloat(c.ClimbUpHorizontalOffset, 0, 200)

	if s.Server.TickRate <= 0 {
		s.Server.TickRate = 60
	}
}

// ClimbConfig returns the climbing tunables.
func (s Settings) ClimbConfig() climb.Config {
	c := s.Climbing
	return climb.Config{
		CollisionCapsuleRadius:        c.CollisionCapsuleRadius,
		CollisionCapsuleHalfHeight:    c.CollisionCapsuleHalfHeight,
		MaxHorizontalDegrees:          c.MaxHorizontalDegrees,
		ClimbingCollisionShrinkAmount: c.ClimbingCollisionShrinkAmount,
		MaxClimbingSpeed:              c.MaxClimbingSpeed,
		MaxClimbingAcceleration:       c.MaxClimbingAcceleration,
		BrakingDecelerationClimbing:   c.BrakingDecelerationClimbing,
		ClimbingRotationSpeed:         c.ClimbingRotationSpeed,
		ClimbingSnapSpeed:             c.ClimbingSnapSpeed,
		DistanceFromSurface:           c.DistanceFromSurface,
		FloorCheckDistance:            c.FloorCheckDistance,
		ClimbUpVerticalOffset:         c.ClimbUpVerticalOffset,
		ClimbUpHorizontalOffset:       c.ClimbUpHorizontalOffset,
	}
}

// MovementConfig returns the tunables of the base movement simulation.
func (s Settings) MovementConfig() movement.Config {
	conf := movement.DefaultConfig()
	conf.Radius = s.Agent.Radius
	conf.HalfHeight = s.Agent.HalfHeight
	conf.EyeHeight = s.Agent.EyeHeight

	conf.MaxWalkSpeed = s.Movement.MaxWalkSpeed
	conf.MaxAcceleration = s.Movement.MaxAcceleration
	conf.Gravity = s.Movement.Gravity
	conf.AirControl = s.Movement.AirControl
	conf.WalkableFloorAngle = s.Movement.WalkableFloorAngle
	conf.GroundFriction = s.Movement.GroundFriction
	conf.BrakingDecelerationWalking = s.Movement.BrakingDecelerationWalking
	return conf
}

// DebugModes returns the enabled debug modes. Unknown names are returned separately.
func (s Settings) DebugModes() (modes []game.DebugMode, unknown []string) {
	for _, name := range s.Server.Debug {
		if mode, ok := game.ParseDebugMode(name); ok {
			modes = append(modes, mode)
		} else {
			unknown = append(unknown, name)
		}
	}
	return modes, unknown
}

// SaveDefault will create and save the default settings file. If the file already exists, ErrExists is returned.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return ErrExists
	}

	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return ErrNotFound if the file does not exist.
// Values out of their documented range are clamped.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	settings.Clamp()
	return settings, nil
}
