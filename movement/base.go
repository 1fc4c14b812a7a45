package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/world"
)

// Extension plugs custom movement modes into a Base. Every hook is called synchronously from the
// simulation step that triggered it.
type Extension interface {
	// PhysCustom runs one physics step while the base is in ModeCustom.
	PhysCustom(dt float32, iterations int)
	// OnMovementUpdated is called at the end of every movement update.
	OnMovementUpdated(dt float32, oldPos, oldVel mgl32.Vec3)
	// OnMovementModeChanged is called after the movement mode has changed.
	OnMovementModeChanged(prev Mode, prevCustom CustomMode)
	// MaxSpeed returns the speed limit for the current mode, given the walking limit.
	MaxSpeed(walking float32) float32
	// MaxAcceleration returns the acceleration limit for the current mode, given the walking limit.
	MaxAcceleration(walking float32) float32
}

// RootMotion is a velocity contributed by something other than input, such as a gameplay effect.
type RootMotion struct {
	Velocity mgl32.Vec3
	// Override replaces the integrated velocity instead of adding to it.
	Override bool
}

// Base is the movement simulation of a single agent. It runs the walking and falling modes itself
// and hands custom modes to its Extension.
type Base struct {
	id    world.ID
	world world.Querier
	conf  Config
	dbg   *game.Debugger
	ext   Extension

	pos, vel mgl32.Vec3
	rot      mgl32.Quat
	input    mgl32.Vec3

	halfHeight float32

	mode       Mode
	customMode CustomMode

	orientToMovement bool

	animRootMotion    mgl32.Vec3
	hasAnimRootMotion bool
	source            *RootMotion
	preAdditiveVel    mgl32.Vec3
	appliedAdditive   bool

	// OnImpact, if set, is called for every blocking hit passed to HandleImpact.
	OnImpact func(hit world.Hit)
}

// NewBase returns a walking agent at the origin. id is the collider of the agent itself, which
// is ignored by every query the agent makes.
func NewBase(id world.ID, w world.Querier, conf Config, dbg *game.Debugger) *Base {
	return &Base{
		id:               id,
		world:            w,
		conf:             conf,
		dbg:              dbg,
		rot:              mgl32.QuatIdent(),
		halfHeight:       conf.HalfHeight,
		mode:             ModeWalking,
		orientToMovement: true,
	}
}

// SetExtension sets the extension custom modes and hooks are dispatched to.
func (b *Base) SetExtension(ext Extension) {
	b.ext = ext
}

func (b *Base) ID() world.ID {
	return b.id
}

// World returns the scene the agent moves in.
func (b *Base) World() world.Querier {
	return b.world
}

// Filter returns the query filter that skips the agent's own collider.
func (b *Base) Filter() world.Filter {
	return world.IgnoreSelf(b.id)
}

func (b *Base) Config() Config {
	return b.conf
}

func (b *Base) Debugger() *game.Debugger {
	return b.dbg
}

func (b *Base) Pos() mgl32.Vec3 {
	return b.pos
}

func (b *Base) SetPos(pos mgl32.Vec3) {
	b.pos = pos
}

func (b *Base) Vel() mgl32.Vec3 {
	return b.vel
}

func (b *Base) SetVel(vel mgl32.Vec3) {
	b.vel = vel
}

func (b *Base) Rotation() mgl32.Quat {
	return b.rot
}

func (b *Base) SetRotation(rot mgl32.Quat) {
	b.rot = rot.Normalize()
}

// Forward returns the agent's local forward axis in world space.
func (b *Base) Forward() mgl32.Vec3 {
	return b.rot.Rotate(game.Forward)
}

// UpVector returns the agent's local up axis in world space.
func (b *Base) UpVector() mgl32.Vec3 {
	return b.rot.Rotate(game.Up)
}

// Input returns the requested movement direction, with a length of at most one.
func (b *Base) Input() mgl32.Vec3 {
	return b.input
}

// SetInput sets the requested movement direction. Longer vectors are scaled down to unit length.
func (b *Base) SetInput(input mgl32.Vec3) {
	if input.LenSqr() > 1 {
		input = input.Normalize()
	}
	b.input = input
}

// Radius returns the radius of the agent's capsule.
func (b *Base) Radius() float32 {
	return b.conf.Radius
}

// HalfHeight returns the current half height of the agent's capsule.
func (b *Base) HalfHeight() float32 {
	return b.halfHeight
}

// SetHalfHeight resizes the agent's capsule, keeping it at least as tall as it is wide.
func (b *Base) SetHalfHeight(halfHeight float32) {
	b.halfHeight = max(halfHeight, b.conf.Radius)
}

// Shape returns the agent's collision capsule.
func (b *Base) Shape() world.Shape {
	return world.Capsule(b.conf.Radius, b.halfHeight)
}

// EyeHeight returns the height of the agent's eyes above its centre.
func (b *Base) EyeHeight() float32 {
	return b.conf.EyeHeight
}

func (b *Base) OrientRotationToMovement() bool {
	return b.orientToMovement
}

func (b *Base) SetOrientRotationToMovement(orient bool) {
	b.orientToMovement = orient
}

func (b *Base) Mode() Mode {
	return b.mode
}

func (b *Base) CustomMode() CustomMode {
	return b.customMode
}

// IsCustomMode returns true if the base is in the given custom mode.
func (b *Base) IsCustomMode(custom CustomMode) bool {
	return b.mode == ModeCustom && b.customMode == custom
}

// SetMovementMode changes the movement mode. custom is ignored unless mode is ModeCustom. Changing
// to the current mode does nothing.
func (b *Base) SetMovementMode(mode Mode, custom CustomMode) {
	if mode != ModeCustom {
		custom = 0
	}
	if mode == b.mode && custom == b.customMode {
		return
	}

	prev, prevCustom := b.mode, b.customMode
	b.mode, b.customMode = mode, custom
	b.dbg.Notify(game.DebugModeMovement, true, "mode changed from %v(%d) to %v(%d)", prev, prevCustom, mode, custom)

	if mode == ModeWalking {
		b.vel[1] = 0
	}
	if b.ext != nil {
		b.ext.OnMovementModeChanged(prev, prevCustom)
	}
}

// MaxSpeed returns the speed limit of the current mode.
func (b *Base) MaxSpeed() float32 {
	if b.ext != nil {
		return b.ext.MaxSpeed(b.conf.MaxWalkSpeed)
	}
	return b.conf.MaxWalkSpeed
}

// MaxAcceleration returns the acceleration limit of the current mode.
func (b *Base) MaxAcceleration() float32 {
	if b.ext != nil {
		return b.ext.MaxAcceleration(b.conf.MaxAcceleration)
	}
	return b.conf.MaxAcceleration
}

// WalkableFloorY returns the minimum up component of a walkable floor normal.
func (b *Base) WalkableFloorY() float32 {
	return game.WalkableFloorY(b.conf.WalkableFloorAngle)
}

// IsWalkable returns true if a surface with the given normal can be stood on.
func (b *Base) IsWalkable(normal mgl32.Vec3) bool {
	return normal.Y() >= b.WalkableFloorY()
}

// StopMovementImmediately zeroes the agent's velocity.
func (b *Base) StopMovementImmediately() {
	b.vel = mgl32.Vec3{}
}
