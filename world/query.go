package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a collider in a scene.
type ID uint64

// Shape is the volume swept by a query. A shape with a radius and a half height is an upright
// capsule, a shape with only a radius is a sphere, and the zero shape is a line.
type Shape struct {
	Radius     float32
	HalfHeight float32
}

// Capsule returns an upright capsule shape. The half height includes the hemispherical caps.
func Capsule(radius, halfHeight float32) Shape {
	return Shape{Radius: radius, HalfHeight: math32.Max(radius, halfHeight)}
}

// Sphere returns a sphere shape.
func Sphere(radius float32) Shape {
	return Shape{Radius: radius, HalfHeight: radius}
}

// IsLine returns true if the shape has no volume.
func (s Shape) IsLine() bool {
	return s.Radius <= 0 && s.HalfHeight <= 0
}

// Extents returns the half extents of the axis aligned box enclosing the shape.
func (s Shape) Extents() mgl32.Vec3 {
	return mgl32.Vec3{s.Radius, math32.Max(s.Radius, s.HalfHeight), s.Radius}
}

// Hit is a single contact reported by a query.
type Hit struct {
	// ImpactPoint is the point on the touched surface.
	ImpactPoint mgl32.Vec3
	// Normal is the unit surface normal at the impact point.
	Normal mgl32.Vec3
	// Location is where the centre of the swept shape was at the moment of impact.
	Location mgl32.Vec3
	// Time is the fraction of the query segment travelled before the impact.
	Time float32
	// StartPenetrating is set when the shape already overlapped the collider at the start of the
	// query. Normal then points in the direction that resolves the overlap.
	StartPenetrating bool
	// Penetration is the overlap depth along Normal for start-penetrating hits.
	Penetration float32
	// Collider is the collider that was hit.
	Collider ID
}

// Filter narrows the colliders a query considers.
type Filter struct {
	Ignore []ID
}

// IgnoreSelf returns a filter that skips the collider with the given ID.
func IgnoreSelf(self ID) Filter {
	return Filter{Ignore: []ID{self}}
}

// Ignores returns true if the filter skips the collider.
func (f Filter) Ignores(id ID) bool {
	for _, ignored := range f.Ignore {
		if ignored == id {
			return true
		}
	}
	return false
}

// Querier answers collision queries against a scene.
type Querier interface {
	// Sweep moves shape from start to end and returns every contact ordered by time.
	Sweep(shape Shape, start, end mgl32.Vec3, rot mgl32.Quat, filter Filter) []Hit
	// SweepSingle moves shape from start to end and returns the first contact.
	SweepSingle(shape Shape, start, end mgl32.Vec3, rot mgl32.Quat, filter Filter) (Hit, bool)
	// TraceLine returns the first contact of a ray between start and end.
	TraceLine(start, end mgl32.Vec3, filter Filter) (Hit, bool)
}
