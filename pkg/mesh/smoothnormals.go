package mesh

import (
	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// normalAccumulator tracks the running area-weighted normal sum for one
// vertex position while smoothNormals folds in every triangle that shares
// it.
type normalAccumulator struct {
	sum   vmath.Vec3
	count int
}

// smoothNormals replaces every triangle's vertex normals with an
// area-weighted average of the geometric normals of all triangles sharing
// that vertex position. It is used for meshes (typically OBJ files without
// "vn" directives) that supply no per-vertex normals.
func smoothNormals(triangles []geom.Triangle) []geom.Triangle {
	accum := make(map[vmath.Vec3]*normalAccumulator)

	accumulate := func(pos vmath.Vec3, weighted vmath.Vec3) {
		a, ok := accum[pos]
		if !ok {
			a = &normalAccumulator{}
			accum[pos] = a
		}
		a.sum = a.sum.Add(weighted)
		a.count++
	}

	for _, tri := range triangles {
		e1 := tri.V2.Position.Sub(tri.V1.Position)
		e2 := tri.V3.Position.Sub(tri.V1.Position)
		// cross product magnitude is twice the triangle's area, so using
		// the un-normalized cross product as the weight favors larger
		// triangles without computing area explicitly.
		weighted := e1.Cross(e2)

		accumulate(tri.V1.Position, weighted)
		accumulate(tri.V2.Position, weighted)
		accumulate(tri.V3.Position, weighted)
	}

	out := make([]geom.Triangle, len(triangles))
	for i, tri := range triangles {
		out[i] = geom.NewTriangle(
			smoothedVertex(tri.V1, accum),
			smoothedVertex(tri.V2, accum),
			smoothedVertex(tri.V3, accum),
		)
	}
	return out
}

func smoothedVertex(v geom.Vertex, accum map[vmath.Vec3]*normalAccumulator) geom.Vertex {
	a := accum[v.Position]
	smoothed := a.sum.Normalize()
	nv := geom.NewVertex(v.Position, smoothed)
	if v.HasUV {
		nv = nv.WithUV(v.UV)
	}
	return nv
}
