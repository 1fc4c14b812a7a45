package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/animation"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/oomph-ac/oclimb/world"
)

const testDT = float32(1) / 60

// mockWorld answers queries through the functions it is given. Missing functions report nothing.
type mockWorld struct {
	// scan answers capsule sweeps made by the wall scan.
	scan func(start, end mgl32.Vec3) []world.Hit
	// probe answers sphere sweeps made by the surface tracker.
	probe func(start, end mgl32.Vec3) (world.Hit, bool)
	// trace answers line traces.
	trace func(start, end mgl32.Vec3) (world.Hit, bool)
}

func (w *mockWorld) Sweep(shape world.Shape, start, end mgl32.Vec3, _ mgl32.Quat, _ world.Filter) []world.Hit {
	if w.scan == nil || shape != world.Capsule(50, 72) {
		return nil
	}
	return w.scan(start, end)
}

func (w *mockWorld) SweepSingle(shape world.Shape, start, end mgl32.Vec3, _ mgl32.Quat, _ world.Filter) (world.Hit, bool) {
	if w.probe == nil || shape != world.Sphere(surfaceProbeRadius) {
		return world.Hit{}, false
	}
	return w.probe(start, end)
}

func (w *mockWorld) TraceLine(start, end mgl32.Vec3, _ world.Filter) (world.Hit, bool) {
	if w.trace == nil {
		return world.Hit{}, false
	}
	return w.trace(start, end)
}

// wallAhead returns a mock whose scan, probes and forward traces all touch a wall with the
// given normal 50 units in front of the agent.
func wallAhead(normal mgl32.Vec3) *mockWorld {
	return &mockWorld{
		scan: func(start, end mgl32.Vec3) []world.Hit {
			return []world.Hit{{ImpactPoint: start.Add(normal.Mul(-30)), Normal: normal}}
		},
		probe: func(start, end mgl32.Vec3) (world.Hit, bool) {
			return world.Hit{ImpactPoint: start.Add(end.Sub(start).Normalize().Mul(50)), Normal: normal, Time: 0.4}, true
		},
		trace: forwardOnly(true),
	}
}

// forwardOnly returns a trace function that hits for traces that are not pointing down.
func forwardOnly(hit bool) func(start, end mgl32.Vec3) (world.Hit, bool) {
	return func(start, end mgl32.Vec3) (world.Hit, bool) {
		if end.Y() < start.Y()-1e-3 || !hit {
			return world.Hit{}, false
		}
		return world.Hit{ImpactPoint: end, Normal: start.Sub(end).Normalize(), Time: 0.5}, true
	}
}

type mockAnim struct {
	playing    bool
	plays      int
	isPlayings int
	// refuse makes Play fail.
	refuse bool
}

func (a *mockAnim) IsPlaying(*animation.Montage) bool {
	a.isPlayings++
	return a.playing
}

func (a *mockAnim) Play(m *animation.Montage) float32 {
	a.plays++
	if a.refuse {
		return 0
	}
	a.playing = true
	return m.Duration()
}

type mockRelay struct {
	sent []RequestKind
}

func (r *mockRelay) Send(kind RequestKind) error {
	r.sent = append(r.sent, kind)
	return nil
}

func newComponent(w world.Querier, opts ...Option) *Component {
	return newComponentWithConfig(w, DefaultConfig(), opts...)
}

func newComponentWithConfig(w world.Querier, conf Config, opts ...Option) *Component {
	b := movement.NewBase(0, w, movement.DefaultConfig(), nil)
	return New(b, conf, opts...)
}

// startClimbing puts the component straight into the climbing mode.
func startClimbing(c *Component) {
	c.wantsToClimb = true
	c.base.SetMovementMode(movement.ModeCustom, CustomModeClimbing)
}
