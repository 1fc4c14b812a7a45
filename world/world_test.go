package world

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func newWallWorld() (*World, ID) {
	w := New()
	id := w.AddBox(cube.Box(100, 0, -200, 200, 400, 200))
	return w, id
}

func TestTraceLineHitsNearestFace(t *testing.T) {
	w, id := newWallWorld()
	hit, ok := w.TraceLine(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{150, 100, 0}, Filter{})
	if !ok {
		t.Fatalf("expected the trace to hit the wall")
	}
	if hit.Collider != id {
		t.Fatalf("expected collider %d, got %d", id, hit.Collider)
	}
	if !hit.Normal.ApproxEqual(mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("expected normal facing -X, got %v", hit.Normal)
	}
	if !hit.ImpactPoint.ApproxEqualThreshold(mgl32.Vec3{100, 100, 0}, 1e-3) {
		t.Fatalf("unexpected impact point %v", hit.ImpactPoint)
	}
	if hit.Time < 0.66 || hit.Time > 0.67 {
		t.Fatalf("expected time of roughly 2/3, got %v", hit.Time)
	}
}

func TestTraceLineMisses(t *testing.T) {
	w, _ := newWallWorld()
	if _, ok := w.TraceLine(mgl32.Vec3{0, 500, 0}, mgl32.Vec3{150, 500, 0}, Filter{}); ok {
		t.Fatalf("expected a trace above the wall to miss")
	}
}

func TestFilterIgnoresSelf(t *testing.T) {
	w, id := newWallWorld()
	if _, ok := w.TraceLine(mgl32.Vec3{0, 100, 0}, mgl32.Vec3{150, 100, 0}, IgnoreSelf(id)); ok {
		t.Fatalf("expected the ignored collider to be skipped")
	}
}

func TestSweepReportsInitialOverlap(t *testing.T) {
	w, _ := newWallWorld()
	start := mgl32.Vec3{75, 100, 0}
	hits := w.Sweep(Capsule(50, 72), start, start.Add(mgl32.Vec3{1, 0, 0}), mgl32.QuatIdent(), Filter{})
	if len(hits) != 1 {
		t.Fatalf("expected one contact, got %d", len(hits))
	}
	hit := hits[0]
	if !hit.StartPenetrating {
		t.Fatalf("expected an initial overlap")
	}
	if !hit.Normal.ApproxEqual(mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("expected the overlap to resolve toward -X, got %v", hit.Normal)
	}
	if hit.Penetration < 24.9 || hit.Penetration > 25.1 {
		t.Fatalf("expected 25 units of penetration, got %v", hit.Penetration)
	}
	if !hit.ImpactPoint.ApproxEqualThreshold(mgl32.Vec3{100, 100, 0}, 1e-3) {
		t.Fatalf("unexpected impact point %v", hit.ImpactPoint)
	}
}

func TestZeroLengthSweepReportsNothing(t *testing.T) {
	w, _ := newWallWorld()
	start := mgl32.Vec3{75, 100, 0}
	if hits := w.Sweep(Capsule(50, 72), start, start, mgl32.QuatIdent(), Filter{}); len(hits) != 0 {
		t.Fatalf("expected no contacts from a zero-length sweep, got %d", len(hits))
	}
}

func TestSweepSingleStopsAtGrownFace(t *testing.T) {
	w, _ := newWallWorld()
	hit, ok := w.SweepSingle(Sphere(6), mgl32.Vec3{0, 100, 0}, mgl32.Vec3{120, 100, 0}, mgl32.QuatIdent(), Filter{})
	if !ok {
		t.Fatalf("expected the sphere to hit the wall")
	}
	if !hit.Location.ApproxEqualThreshold(mgl32.Vec3{94, 100, 0}, 1e-3) {
		t.Fatalf("expected the sphere centre to stop at x=94, got %v", hit.Location)
	}
	if !hit.ImpactPoint.ApproxEqualThreshold(mgl32.Vec3{100, 100, 0}, 1e-3) {
		t.Fatalf("expected the impact on the wall surface, got %v", hit.ImpactPoint)
	}
}

func TestSweepAwayFromTouchingFace(t *testing.T) {
	w, _ := newWallWorld()
	start := mgl32.Vec3{94, 100, 0}
	if _, ok := w.SweepSingle(Sphere(6), start, mgl32.Vec3{0, 100, 0}, mgl32.QuatIdent(), Filter{}); ok {
		t.Fatalf("expected no contact when moving away from a touched face")
	}
}

func TestSweepOrdersByTime(t *testing.T) {
	w := New()
	far := w.AddBox(cube.Box(300, 0, -50, 310, 100, 50))
	near := w.AddBox(cube.Box(100, 0, -50, 110, 100, 50))

	hits := w.Sweep(Sphere(5), mgl32.Vec3{0, 50, 0}, mgl32.Vec3{400, 50, 0}, mgl32.QuatIdent(), Filter{})
	if len(hits) != 2 {
		t.Fatalf("expected two contacts, got %d", len(hits))
	}
	if hits[0].Collider != near || hits[1].Collider != far {
		t.Fatalf("expected contacts ordered near to far, got %d then %d", hits[0].Collider, hits[1].Collider)
	}
}

func TestRemoveBox(t *testing.T) {
	w, id := newWallWorld()
	w.RemoveBox(id)
	if w.Len() != 0 {
		t.Fatalf("expected an empty world, got %d colliders", w.Len())
	}
	if _, ok := w.Box(id); ok {
		t.Fatalf("expected the removed collider to be gone")
	}
	if w.SetBox(id, cube.Box(0, 0, 0, 1, 1, 1)) {
		t.Fatalf("expected SetBox on a removed collider to fail")
	}
}
