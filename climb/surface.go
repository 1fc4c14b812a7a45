package climb

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/world"
)

const (
	surfaceProbeRadius = 6
	surfaceProbeLength = 120
)

// computeSurfaceInfo probes toward every wall contact with a small sphere and averages what the
// probes touch. Probes that touch nothing are left out. Without any touching probe the zero
// surface is returned.
func (c *Component) computeSurfaceInfo(hits []world.Hit) Surface {
	if len(hits) == 0 {
		return Surface{}
	}

	var (
		start   = c.base.Pos()
		shape   = world.Sphere(surfaceProbeRadius)
		filter  = c.base.Filter()
		anchor  mgl32.Vec3
		normal  mgl32.Vec3
		touched int
	)
	for _, hit := range hits {
		dir := game.SafeNormal(hit.ImpactPoint.Sub(start))
		if dir.LenSqr() == 0 {
			continue
		}
		probe, ok := c.base.World().SweepSingle(shape, start, start.Add(dir.Mul(surfaceProbeLength)), mgl32.QuatIdent(), filter)
		if !ok {
			continue
		}
		anchor = anchor.Add(probe.ImpactPoint)
		normal = normal.Add(probe.Normal)
		touched++
	}
	if touched == 0 {
		return Surface{}
	}

	normal = game.SafeNormal(normal)
	if normal.LenSqr() == 0 {
		return Surface{}
	}
	return Surface{Anchor: anchor.Mul(1 / float32(touched)), Normal: normal}
}
