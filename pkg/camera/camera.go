// Package camera implements a pinhole camera: the collaborator that turns
// normalized device coordinates into primary rays for the renderer.
package camera

import (
	"math"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// Camera is a pinhole camera defined by its position, orientation, and
// vertical field of view. It produces primary rays from normalized device
// coordinates in [-1, 1]^2, with (0, 0) at the image center and (-1, 1) at
// the top-left corner.
type Camera struct {
	origin     vmath.Vec3
	forward    vmath.Vec3
	right      vmath.Vec3
	up         vmath.Vec3
	halfHeight float32
	halfWidth  float32
}

// New constructs a camera looking from origin toward target, with the
// given up hint, vertical field of view in degrees, and aspect ratio
// (width / height).
func New(origin, target, upHint vmath.Vec3, fovYDegrees, aspectRatio float32) Camera {
	forward := target.Sub(origin).Normalize()
	right := forward.Cross(upHint).Normalize()
	up := right.Cross(forward).Normalize()

	halfHeight := float32(math.Tan(float64(fovYDegrees) * math.Pi / 180 / 2))
	halfWidth := halfHeight * aspectRatio

	return Camera{
		origin:     origin,
		forward:    forward,
		right:      right,
		up:         up,
		halfHeight: halfHeight,
		halfWidth:  halfWidth,
	}
}

// Origin returns the camera's world-space position, the origin of every
// primary ray it produces.
func (c Camera) Origin() vmath.Vec3 {
	return c.origin
}

// RayDirection returns the unit-length direction of the primary ray
// through the given normalized device coordinate.
func (c Camera) RayDirection(ndc vmath.Vec2) vmath.Vec3 {
	dir := c.forward.
		Add(c.right.Scale(ndc.X * c.halfWidth)).
		Add(c.up.Scale(ndc.Y * c.halfHeight))
	return dir.Normalize()
}

// Ray returns the full primary ray through the given normalized device
// coordinate.
func (c Camera) Ray(ndc vmath.Vec2) geom.Ray {
	return geom.NewRay(c.origin, c.RayDirection(ndc))
}
