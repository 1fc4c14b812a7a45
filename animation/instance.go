package animation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Instance plays montages for a single agent.
type Instance interface {
	// IsPlaying returns true if the montage is currently playing.
	IsPlaying(m *Montage) bool
	// Play starts the montage from the beginning and returns its duration. Zero is returned if the
	// montage could not be played.
	Play(m *Montage) float32
}

// Player is the default Instance. At most one montage plays at a time and starting another one
// replaces it.
type Player struct {
	current *Montage
	segment int
	// progress tweens the completed fraction of the current segment.
	progress *gween.Tween
	last     float32

	velocity  mgl32.Vec3
	hasMotion bool

	plays int
}

// NewPlayer returns a new player with nothing playing.
func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) IsPlaying(m *Montage) bool {
	return m != nil && p.current == m
}

func (p *Player) Play(m *Montage) float32 {
	if m == nil {
		return 0
	}
	d := m.Duration()
	if d <= 0 {
		return 0
	}
	p.current = m
	p.startSegment(0)
	p.plays++
	return d
}

func (p *Player) startSegment(i int) {
	p.segment, p.last = i, 0
	s := p.current.Segments[i]
	fn := s.Ease
	if fn == nil {
		fn = ease.Linear
	}
	p.progress = gween.New(0, 1, s.Duration, fn)
}

// Current returns the montage currently playing, or nil if there is none.
func (p *Player) Current() *Montage {
	return p.current
}

// Plays returns how many montages have been started on the player.
func (p *Player) Plays() int {
	return p.plays
}

// Stop stops the current montage.
func (p *Player) Stop() {
	p.current, p.progress = nil, nil
	p.segment, p.last = 0, 0
}

// Tick advances the current montage by dt seconds and works out the root motion for the step.
// The montage is stopped once its last segment is done.
func (p *Player) Tick(dt float32) {
	p.velocity, p.hasMotion = mgl32.Vec3{}, false
	if p.current == nil || dt < game.MinTickTime {
		return
	}

	for p.current.Segments[p.segment].Duration <= 0 {
		if !p.nextSegment() {
			return
		}
	}

	value, done := p.progress.Update(dt)
	offset := p.current.Segments[p.segment].Offset
	p.velocity = offset.Mul((value - p.last) / dt)
	p.hasMotion = true
	p.last = value

	if done {
		p.nextSegment()
	}
}

// nextSegment moves on to the next segment. It returns false and stops the montage if there is none.
func (p *Player) nextSegment() bool {
	if p.segment+1 >= len(p.current.Segments) {
		p.Stop()
		return false
	}
	p.startSegment(p.segment + 1)
	return true
}

// RootMotion returns the world space root motion velocity of the last step for an owner with the
// given rotation. False is returned if the last step had no root motion.
func (p *Player) RootMotion(rot mgl32.Quat) (mgl32.Vec3, bool) {
	if !p.hasMotion {
		return mgl32.Vec3{}, false
	}
	return rot.Rotate(p.velocity), true
}
