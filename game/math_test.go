package game

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestRotationFromForward(t *testing.T) {
	for _, dir := range []mgl32.Vec3{{0, 0, 1}, {1, 0, 0}, {0, 0, -1}, {1, 1, 0}, {0, 1, 0}} {
		q := RotationFromForward(dir)
		if got := q.Rotate(Forward); got.Sub(dir.Normalize()).Len() > 1e-4 {
			t.Fatalf("expected forward %v, got %v", dir.Normalize(), got)
		}
	}
	if q := RotationFromForward(mgl32.Vec3{}); !q.ApproxEqual(mgl32.QuatIdent()) {
		t.Fatalf("expected identity for a zero direction, got %v", q)
	}
}

func TestUprightRotationKeepsYaw(t *testing.T) {
	wall := RotationFromForward(mgl32.Vec3{1, -0.5, 0})
	upright := UprightRotation(wall)
	if !IsUpright(upright) {
		t.Fatalf("expected an upright rotation, got %v", upright)
	}
	if got := Yaw(upright); math32.Abs(got-math32.Pi/2) > 1e-4 {
		t.Fatalf("expected a yaw of 90 degrees, got %v", mgl32.RadToDeg(got))
	}
	if IsUpright(wall) {
		t.Fatalf("expected a pitched rotation not to be upright")
	}
}

func TestIsVertical(t *testing.T) {
	if !IsVertical(Up) || !IsVertical(Up.Mul(-1)) {
		t.Fatalf("expected up and down to be vertical")
	}
	if IsVertical(mgl32.Vec3{}) {
		t.Fatalf("expected the zero vector not to be vertical")
	}
	if IsVertical(mgl32.Vec3{0, math32.Cos(mgl32.DegToRad(2)), math32.Sin(mgl32.DegToRad(2))}) {
		t.Fatalf("expected a normal two degrees off up not to be vertical")
	}
}

func TestQuatInterpTo(t *testing.T) {
	from := mgl32.QuatIdent()
	to := mgl32.QuatRotate(math32.Pi/2, Up)
	if q := QuatInterpTo(from, to, 1, 0); !q.ApproxEqual(to) {
		t.Fatalf("expected a non-positive speed to snap, got %v", q)
	}
	mid := QuatInterpTo(from, to, 0.05, 10)
	if angle := AngleBetween(mid.Rotate(Forward), Forward); angle < 44 || angle > 46 {
		t.Fatalf("expected half the way to be covered, got %v degrees", angle)
	}
}

func TestSafeNormal2D(t *testing.T) {
	if n := SafeNormal2D(mgl32.Vec3{3, 10, 4}); !n.ApproxEqual(mgl32.Vec3{0.6, 0, 0.8}) {
		t.Fatalf("unexpected normal %v", n)
	}
	if n := SafeNormal2D(Up); n.LenSqr() != 0 {
		t.Fatalf("expected a vertical vector to have no horizontal normal, got %v", n)
	}
}

func TestDebuggerModes(t *testing.T) {
	d := NewDebugger(nil)
	d.SetMode(DebugModeLedge, true)
	if !d.Enabled(DebugModeLedge) || d.Enabled(DebugModeScan) {
		t.Fatalf("unexpected enabled modes")
	}
	d.SetMode(DebugModeLedge, false)
	if d.Enabled(DebugModeLedge) {
		t.Fatalf("expected the mode to be disabled")
	}
	var nilDbg *Debugger
	if nilDbg.Enabled(DebugModeLedge) {
		t.Fatalf("expected a nil debugger to have nothing enabled")
	}
	if m, ok := ParseDebugMode("authority"); !ok || m != DebugModeAuthority {
		t.Fatalf("expected to parse the authority mode")
	}
}
