package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/animation"
	"github.com/oomph-ac/oclimb/assert"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/oomph-ac/oclimb/world"
	"github.com/sasha-s/go-deadlock"
)

// Surface is the climbing surface tracked for the current tick. A zero normal means there is
// no surface.
type Surface struct {
	Anchor mgl32.Vec3
	Normal mgl32.Vec3
}

// IsZero returns true if the surface is the "no surface" sentinel.
func (s Surface) IsZero() bool {
	return s.Normal.LenSqr() == 0
}

// rootMotionSource is implemented by animation instances that drive their owner with root motion.
type rootMotionSource interface {
	RootMotion(rot mgl32.Quat) (mgl32.Vec3, bool)
}

// Component extends a movement base with the climbing custom mode.
type Component struct {
	base *movement.Base
	conf Config
	dbg  *game.Debugger

	role  Role
	relay Relay

	anim    animation.Instance
	montage *animation.Montage

	// hits are the wall contacts found by the scan at the end of the last tick.
	hits    []world.Hit
	surface Surface

	wantsToClimb bool
	mantling     bool

	// replicated state is written by Replicate, which may run on another goroutine than the
	// readers of the proxy.
	replicatedMu       deadlock.RWMutex
	replicatedNormal   mgl32.Vec3
	replicatedClimbing bool
}

// Option configures a Component.
type Option func(c *Component)

// WithAnimation sets the animation instance and the montage played to mantle ledges. Without
// both, ledge mantling is never available.
func WithAnimation(anim animation.Instance, montage *animation.Montage) Option {
	return func(c *Component) {
		c.anim, c.montage = anim, montage
	}
}

// WithRelay makes the component a proxy that relays its requests to the authority.
func WithRelay(relay Relay) Option {
	return func(c *Component) {
		c.role, c.relay = RoleProxy, relay
	}
}

// New returns a climbing component and registers it as the extension of the base.
func New(base *movement.Base, conf Config, opts ...Option) *Component {
	assert.IsTrue(base != nil, "climbing component requires a movement base")

	c := &Component{
		base: base,
		conf: conf,
		dbg:  base.Debugger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	assert.IsTrue(c.role != RoleProxy || c.relay != nil, "proxy climbing component requires a relay")
	base.SetExtension(c)
	return c
}

func (c *Component) Base() *movement.Base {
	return c.base
}

func (c *Component) Config() Config {
	return c.conf
}

func (c *Component) Role() Role {
	return c.role
}

// Tick runs a single simulation step of dt seconds. Proxies do not simulate.
func (c *Component) Tick(dt float32) {
	if c.role != RoleAuthority {
		return
	}

	c.syncRootMotion()
	c.base.PerformMovement(dt)
	c.hits = c.scanForWalls()
	c.checkMantleFinished()
}

// syncRootMotion hands the root motion of the playing montage to the base.
func (c *Component) syncRootMotion() {
	src, ok := c.anim.(rootMotionSource)
	if !ok {
		return
	}
	if vel, ok := src.RootMotion(c.base.Rotation()); ok {
		c.base.SetAnimRootMotion(vel)
		return
	}
	c.base.ClearAnimRootMotion()
}

// checkMantleFinished gives up the climb once a mantle montage has played out, so that the
// agent drops onto the ledge it mantled.
func (c *Component) checkMantleFinished() {
	if !c.mantling || c.anim.IsPlaying(c.montage) {
		return
	}
	c.mantling = false
	c.wantsToClimb = false
	c.dbg.Notify(game.DebugModeLedge, true, "mantle finished at %v", c.base.Pos())
}

// WallHits returns the wall contacts found during the last tick.
func (c *Component) WallHits() []world.Hit {
	return c.hits
}

// Surface returns the climbing surface tracked during the last climbing tick.
func (c *Component) Surface() Surface {
	return c.surface
}

// WantsToClimb returns true if the agent has a pending or active climb.
func (c *Component) WantsToClimb() bool {
	return c.wantsToClimb
}

// Mantling returns true while a ledge mantle started by this component is playing.
func (c *Component) Mantling() bool {
	return c.mantling
}

// IsClimbing returns true if the agent is climbing. On a proxy this is the replicated state.
func (c *Component) IsClimbing() bool {
	if c.role == RoleProxy {
		c.replicatedMu.RLock()
		defer c.replicatedMu.RUnlock()
		return c.replicatedClimbing
	}
	return c.base.IsCustomMode(CustomModeClimbing)
}

// ClimbSurfaceNormal returns the normal of the surface being climbed, or the zero vector if there
// is none. On a proxy this is the replicated normal.
func (c *Component) ClimbSurfaceNormal() mgl32.Vec3 {
	if c.role == RoleProxy {
		c.replicatedMu.RLock()
		defer c.replicatedMu.RUnlock()
		return c.replicatedNormal
	}
	return c.surface.Normal
}

// Replicate applies state replicated from the authority. It only affects proxies.
func (c *Component) Replicate(normal mgl32.Vec3, climbing bool) {
	if c.role != RoleProxy {
		return
	}
	c.replicatedMu.Lock()
	defer c.replicatedMu.Unlock()
	c.replicatedNormal = normal
	c.replicatedClimbing = climbing
}

func (c *Component) MaxSpeed(walking float32) float32 {
	if c.IsClimbing() {
		return c.conf.MaxClimbingSpeed
	}
	return walking
}

func (c *Component) MaxAcceleration(walking float32) float32 {
	if c.IsClimbing() {
		return c.conf.MaxClimbingAcceleration
	}
	return walking
}

// PhysCustom dispatches the physics step of the active custom mode.
func (c *Component) PhysCustom(dt float32, iterations int) {
	if c.base.CustomMode() == CustomModeClimbing {
		c.physClimbing(dt, iterations)
	}
}
