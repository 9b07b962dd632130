// Package geom implements the primitives the acceleration structure is
// built from: rays, axis-aligned bounding boxes, and triangles, along with
// the ray-box slab test and the Moller-Trumbore ray-triangle test.
package geom

import "github.com/wadu-bvh/rtbvh/pkg/vmath"

// Ray is a world-space ray. Dir is assumed to be unit length by every
// routine that consumes it.
type Ray struct {
	Origin vmath.Vec3
	Dir    vmath.Vec3
}

// NewRay constructs a ray.
func NewRay(origin, dir vmath.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) vmath.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
