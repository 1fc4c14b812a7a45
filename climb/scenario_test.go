package climb

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/animation"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/oomph-ac/oclimb/world"
)

const wallHeight = 300

// wallScene returns a scene with a flat ground and a 300 unit tall wall whose face lies on z=100.
func wallScene() *world.World {
	w := world.New()
	w.AddBox(cube.Box(-1000, -100, -1000, 1000, 0, 1000))
	w.AddBox(cube.Box(-500, 0, 100, 500, wallHeight, 200))
	return w
}

// agentAtWall returns an agent standing on the ground at the climbing standoff from the wall,
// rotated by yaw degrees away from facing it.
func agentAtWall(yaw float32, opts ...Option) *Component {
	c := newComponent(wallScene(), opts...)
	c.base.SetPos(mgl32.Vec3{0, 96, 55})
	c.base.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(yaw), game.Up))
	return c
}

func TestScenarioClimbFacingWall(t *testing.T) {
	c := agentAtWall(0)
	c.RequestClimb()
	if !c.WantsToClimb() {
		t.Fatalf("expected a wall straight ahead to be climbable")
	}
	c.Tick(testDT)
	if !c.IsClimbing() {
		t.Fatalf("expected the agent to climb after a tick, got %v", c.base.Mode())
	}
	hits := c.WallHits()
	if len(hits) == 0 {
		t.Fatalf("expected the scan after the tick to keep the wall in range")
	}
	if !hits[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("expected the wall face normal, got %v", hits[0].Normal)
	}
}

func TestScenarioWallAtSteepIncidence(t *testing.T) {
	c := agentAtWall(40)
	c.RequestClimb()
	if c.WantsToClimb() {
		t.Fatalf("expected a wall at 40 degrees not to be climbable")
	}
	for i := 0; i < 10; i++ {
		c.Tick(testDT)
		if c.IsClimbing() {
			t.Fatalf("expected the agent never to climb")
		}
	}
}

func TestClimbingKeepsStandoff(t *testing.T) {
	c := agentAtWall(0)
	c.RequestClimb()
	c.base.SetInput(game.Up)
	for i := 0; i < 60; i++ {
		c.Tick(testDT)
	}
	if !c.IsClimbing() {
		t.Fatalf("expected the agent to still climb, got %v", c.base.Mode())
	}
	if y := c.base.Pos().Y(); y < 140 {
		t.Fatalf("expected the agent to have climbed, got y=%v", y)
	}
	if z := c.base.Pos().Z(); z < 54 || z > 56 {
		t.Fatalf("expected the agent to stay 45 units from the wall, got z=%v", z)
	}
	if n := c.ClimbSurfaceNormal(); !n.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("expected the wall normal, got %v", n)
	}
}

func TestCancelIsCooperative(t *testing.T) {
	c := agentAtWall(0)
	c.RequestClimb()
	c.base.SetInput(game.Up)
	for i := 0; i < 30; i++ {
		c.Tick(testDT)
	}

	c.CancelClimb()
	if !c.IsClimbing() {
		t.Fatalf("expected the agent to still climb until the next tick")
	}
	c.Tick(testDT)
	if c.base.Mode() != movement.ModeFalling {
		t.Fatalf("expected the agent to fall after cancelling, got %v", c.base.Mode())
	}

	for i := 0; i < 120; i++ {
		c.Tick(testDT)
		if c.IsClimbing() {
			t.Fatalf("expected no climb without a new request")
		}
	}
	if c.base.Mode() != movement.ModeWalking {
		t.Fatalf("expected the agent to land, got %v", c.base.Mode())
	}

	c.RequestClimb()
	c.Tick(testDT)
	if !c.IsClimbing() {
		t.Fatalf("expected a new request to climb again")
	}
}

func TestDescendingOntoGroundEndsClimb(t *testing.T) {
	c := agentAtWall(0)
	c.RequestClimb()
	c.base.SetInput(game.Up)
	for i := 0; i < 60; i++ {
		c.Tick(testDT)
	}

	c.base.SetInput(game.Up.Mul(-1))
	for i := 0; i < 120 && c.IsClimbing(); i++ {
		c.Tick(testDT)
	}
	if c.IsClimbing() {
		t.Fatalf("expected climbing down onto the ground to end the climb")
	}
	if c.WantsToClimb() {
		t.Fatalf("expected the intent to be cleared")
	}
}

func TestScenarioLedgeMantle(t *testing.T) {
	player := animation.NewPlayer()
	montage := MantleMontage("ledge_climb", DefaultConfig())
	c := agentAtWall(0, WithAnimation(player, montage))

	c.RequestClimb()
	c.base.SetInput(game.Up)

	var mantled bool
	for i := 0; i < 400; i++ {
		player.Tick(testDT)
		c.Tick(testDT)
		mantled = mantled || c.Mantling()
	}
	if !mantled {
		t.Fatalf("expected the agent to mantle the ledge")
	}
	if player.Plays() != 1 {
		t.Fatalf("expected the mantle to play exactly once, got %d", player.Plays())
	}
	if c.base.Mode() != movement.ModeWalking {
		t.Fatalf("expected the agent to stand on the ledge, got %v", c.base.Mode())
	}
	pos := c.base.Pos()
	if pos.Y() < wallHeight+96 || pos.Y() > wallHeight+97 {
		t.Fatalf("expected the agent on top of the wall, got y=%v", pos.Y())
	}
	if pos.Z() < 100 {
		t.Fatalf("expected the agent to have moved over the edge, got z=%v", pos.Z())
	}
	if !game.IsUpright(c.base.Rotation()) {
		t.Fatalf("expected an upright agent after mantling")
	}
}

func TestNoMantleWithoutRoomAbove(t *testing.T) {
	w := wallScene()
	// A ceiling slab over the ledge leaves no room to stand.
	w.AddBox(cube.Box(-500, wallHeight+100, 60, 500, wallHeight+150, 300))

	player := animation.NewPlayer()
	b := movement.NewBase(0, w, movement.DefaultConfig(), nil)
	c := New(b, DefaultConfig(), WithAnimation(player, MantleMontage("ledge_climb", DefaultConfig())))
	b.SetPos(mgl32.Vec3{0, 96, 55})

	c.RequestClimb()
	b.SetInput(game.Up)
	for i := 0; i < 200; i++ {
		player.Tick(testDT)
		c.Tick(testDT)
	}
	if player.Plays() != 0 {
		t.Fatalf("expected no mantle under a ceiling, got %d plays", player.Plays())
	}
}

func TestOverrideVelocitySurvivesObstructedMove(t *testing.T) {
	c := agentAtWall(0)
	c.RequestClimb()
	c.Tick(testDT)
	c.Tick(testDT)
	if !c.IsClimbing() {
		t.Fatalf("expected the agent to climb")
	}

	// Pushes the agent straight into the wall it climbs.
	override := mgl32.Vec3{0, 0, 300}
	c.base.SetRootMotionSource(&movement.RootMotion{Velocity: override, Override: true})
	c.Tick(testDT)

	if !c.IsClimbing() {
		t.Fatalf("expected the agent to keep climbing")
	}
	if z := c.base.Pos().Z(); z > 58.1 {
		t.Fatalf("expected the wall to stop the agent at z=58, got %v", z)
	}
	if !c.base.Vel().ApproxEqual(override) {
		t.Fatalf("expected the override velocity to be kept, got %v", c.base.Vel())
	}
}
