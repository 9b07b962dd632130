// Package render drives primary-ray generation and tile-parallel dispatch
// across a built BVH, producing a surface.Surface.
package render

import (
	"image/color"
	"math"

	"github.com/wadu-bvh/rtbvh/pkg/bvh"
	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// Shade computes the color for a single primary ray against the given
// hierarchy. It implements a simple Lambertian shading model driven by a
// single directional light, sufficient to visualize geometry and
// acceleration-structure correctness; it is not a physically based
// integrator.
func Shade(tree *bvh.BVH, r geom.Ray, lightDir vmath.Vec3, background color.RGBA) color.RGBA {
	hit, ok := tree.Intersect(r)
	if !ok {
		return background
	}

	ndotl := hit.Normal.Dot(lightDir.Scale(-1))
	intensity := float32(math.Max(float64(ndotl), 0.1))

	return color.RGBA{
		R: toByte(intensity),
		G: toByte(intensity),
		B: toByte(intensity),
		A: 255,
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
