package game

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// ClosestPointToBBox returns the point on (or inside) the bounding box closest to v.
func ClosestPointToBBox(v mgl32.Vec3, bb cube.BBox) mgl32.Vec3 {
	return mgl32.Vec3{
		ClampFloat(v.X(), bb.Min().X(), bb.Max().X()),
		ClampFloat(v.Y(), bb.Min().Y(), bb.Max().Y()),
		ClampFloat(v.Z(), bb.Min().Z(), bb.Max().Z()),
	}
}

// BoxContains returns true if v lies strictly inside the bounding box.
func BoxContains(bb cube.BBox, v mgl32.Vec3) bool {
	return v.X() > bb.Min().X() && v.X() < bb.Max().X() &&
		v.Y() > bb.Min().Y() && v.Y() < bb.Max().Y() &&
		v.Z() > bb.Min().Z() && v.Z() < bb.Max().Z()
}

// FaceNormal returns the outward unit normal of a box face.
func FaceNormal(face cube.Face) mgl32.Vec3 {
	switch face {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}
