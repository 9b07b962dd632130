// Package mesh loads triangulated scenes from STL and OBJ files and
// synthesizes missing vertex normals, producing the geom.Triangle slice
// the acceleration structure is built from.
package mesh

import "github.com/wadu-bvh/rtbvh/pkg/geom"

// Mesh is a loaded, triangulated scene ready for bvh.Build.
type Mesh struct {
	Triangles []geom.Triangle
}
