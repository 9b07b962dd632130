package main

import (
	"image/color"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/mesh"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// backgroundColor is the pixel color for primary rays that miss every
// triangle.
var backgroundColor = color.RGBA{R: 20, G: 20, B: 30, A: 255}

// debugSceneMesh builds a small built-in scene (a ground plane and a
// pyramid) so the renderer can be exercised without supplying a mesh file,
// per --debug-scene.
func debugSceneMesh() *mesh.Mesh {
	var tris []geom.Triangle

	groundNormal := vmath.NewVec3(0, 1, 0)
	ground := [4]vmath.Vec3{
		vmath.NewVec3(-5, 0, -5),
		vmath.NewVec3(5, 0, -5),
		vmath.NewVec3(5, 0, 5),
		vmath.NewVec3(-5, 0, 5),
	}
	tris = append(tris,
		geom.NewTriangle(
			geom.NewVertex(ground[0], groundNormal),
			geom.NewVertex(ground[1], groundNormal),
			geom.NewVertex(ground[2], groundNormal),
		),
		geom.NewTriangle(
			geom.NewVertex(ground[0], groundNormal),
			geom.NewVertex(ground[2], groundNormal),
			geom.NewVertex(ground[3], groundNormal),
		),
	)

	apex := vmath.NewVec3(0, 2, 0)
	base := [4]vmath.Vec3{
		vmath.NewVec3(-1, 0, -1),
		vmath.NewVec3(1, 0, -1),
		vmath.NewVec3(1, 0, 1),
		vmath.NewVec3(-1, 0, 1),
	}
	for i := 0; i < 4; i++ {
		a := base[i]
		b := base[(i+1)%4]
		n := b.Sub(a).Cross(apex.Sub(a)).Normalize()
		tris = append(tris, geom.NewTriangle(
			geom.NewVertex(a, n),
			geom.NewVertex(b, n),
			geom.NewVertex(apex, n),
		))
	}

	return &mesh.Mesh{Triangles: tris}
}
