package world

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/sasha-s/go-deadlock"
)

// World is a scene made of axis aligned boxes. Shapes are swept as their enclosing boxes, so a
// capsule behaves like a rounded-off box with square edges; rotations passed to queries are
// ignored.
type World struct {
	nextID ID
	boxes  map[ID]cube.BBox
	order  []ID

	deadlock.RWMutex
}

func New() *World {
	return &World{
		boxes:  make(map[ID]cube.BBox),
		nextID: 1,
	}
}

// AddBox adds a collider to the world and returns its ID.
func (w *World) AddBox(bb cube.BBox) ID {
	w.Lock()
	defer w.Unlock()

	id := w.nextID
	w.nextID++
	w.boxes[id] = bb
	w.order = append(w.order, id)
	return id
}

// SetBox replaces the box of an existing collider. It returns false if the collider does not exist.
func (w *World) SetBox(id ID, bb cube.BBox) bool {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.boxes[id]; !ok {
		return false
	}
	w.boxes[id] = bb
	return true
}

// RemoveBox removes a collider from the world.
func (w *World) RemoveBox(id ID) {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.boxes[id]; !ok {
		return
	}
	delete(w.boxes, id)
	w.order = slices.DeleteFunc(w.order, func(other ID) bool {
		return other == id
	})
}

// Box returns the box of a collider.
func (w *World) Box(id ID) (cube.BBox, bool) {
	w.RLock()
	defer w.RUnlock()

	bb, ok := w.boxes[id]
	return bb, ok
}

// Len returns the amount of colliders in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.order)
}

// Sweep ...
func (w *World) Sweep(shape Shape, start, end mgl32.Vec3, _ mgl32.Quat, filter Filter) []Hit {
	if start.ApproxEqual(end) {
		// A zero-length sweep never reports contacts, the same way terrain does not.
		return nil
	}

	w.RLock()
	defer w.RUnlock()

	var hits []Hit
	for _, id := range w.order {
		if filter.Ignores(id) {
			continue
		}
		if hit, ok := sweepBox(w.boxes[id], shape.Extents(), start, end); ok {
			hit.Collider = id
			hits = append(hits, hit)
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return hits
}

// SweepSingle ...
func (w *World) SweepSingle(shape Shape, start, end mgl32.Vec3, rot mgl32.Quat, filter Filter) (Hit, bool) {
	hits := w.Sweep(shape, start, end, rot, filter)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// TraceLine ...
func (w *World) TraceLine(start, end mgl32.Vec3, filter Filter) (Hit, bool) {
	if start.ApproxEqual(end) {
		return Hit{}, false
	}

	w.RLock()
	defer w.RUnlock()

	var (
		closest Hit
		found   bool
	)
	for _, id := range w.order {
		if filter.Ignores(id) {
			continue
		}
		bb := w.boxes[id]
		// Rays starting inside a collider pass straight out of it.
		if game.BoxContains(bb, start) {
			continue
		}
		hit, ok := interceptBox(bb, bb, start, end)
		if !ok || (found && hit.Time >= closest.Time) {
			continue
		}
		hit.Collider = id
		closest, found = hit, true
	}
	return closest, found
}

// sweepBox sweeps a box with the given half extents against bb by tracing its centre against bb
// grown by those extents.
func sweepBox(bb cube.BBox, extents, start, end mgl32.Vec3) (Hit, bool) {
	grown := bb.GrowVec3(extents)
	if game.BoxContains(grown, start) {
		normal, depth := penetration(grown, start)
		return Hit{
			ImpactPoint:      game.ClosestPointToBBox(start, bb),
			Normal:           normal,
			Location:         start,
			StartPenetrating: true,
			Penetration:      depth,
		}, true
	}
	return interceptBox(bb, grown, start, end)
}

// interceptBox traces the segment against grown, reporting the impact on the surface of bb.
func interceptBox(bb, grown cube.BBox, start, end mgl32.Vec3) (Hit, bool) {
	result, ok := trace.BBoxIntercept(grown, start, end)
	if !ok {
		return Hit{}, false
	}

	dir := end.Sub(start)
	normal := game.FaceNormal(result.Face())
	if dir.Dot(normal) >= 0 {
		// Leaving or grazing the face we are touching.
		return Hit{}, false
	}

	loc := result.Position()
	return Hit{
		ImpactPoint: game.ClosestPointToBBox(loc, bb),
		Normal:      normal,
		Location:    loc,
		Time:        game.ClampFloat(loc.Sub(start).Len()/dir.Len(), 0, 1),
	}, true
}

// penetration returns the direction and depth of the shortest way out of bb from p.
func penetration(bb cube.BBox, p mgl32.Vec3) (mgl32.Vec3, float32) {
	var (
		normal mgl32.Vec3
		depth  = float32(math32.MaxFloat32)
	)
	for axis := 0; axis < 3; axis++ {
		if d := p[axis] - bb.Min()[axis]; d < depth {
			depth = d
			normal = mgl32.Vec3{}
			normal[axis] = -1
		}
		if d := bb.Max()[axis] - p[axis]; d < depth {
			depth = d
			normal = mgl32.Vec3{}
			normal[axis] = 1
		}
	}
	return normal, depth
}
