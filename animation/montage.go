package animation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// Segment is a stretch of a montage that carries its owner by a fixed offset.
type Segment struct {
	Duration float32
	// Offset is expressed in the owner's local space, with X right, Y up and Z forward.
	Offset mgl32.Vec3
	// Ease shapes the motion over the segment. A nil ease moves at a constant speed.
	Ease ease.TweenFunc
}

// Montage is a one-shot animation that drives its owner with root motion while it plays.
type Montage struct {
	Name     string
	Segments []Segment
}

// Duration returns the total play time of the montage in seconds.
func (m *Montage) Duration() float32 {
	var d float32
	for _, s := range m.Segments {
		d += s.Duration
	}
	return d
}

// Displacement returns the local offset covered by playing the montage to the end.
func (m *Montage) Displacement() mgl32.Vec3 {
	var d mgl32.Vec3
	for _, s := range m.Segments {
		d = d.Add(s.Offset)
	}
	return d
}

// LedgeClimb returns a mantle montage that lifts its owner by rise and then carries it forward
// by advance.
func LedgeClimb(name string, rise, advance float32) *Montage {
	return &Montage{
		Name: name,
		Segments: []Segment{
			{Duration: 0.6, Offset: mgl32.Vec3{0, rise, 0}, Ease: ease.OutQuad},
			{Duration: 0.4, Offset: mgl32.Vec3{0, 0, advance}, Ease: ease.InOutQuad},
		},
	}
}
