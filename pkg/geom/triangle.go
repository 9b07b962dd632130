package geom

import "github.com/wadu-bvh/rtbvh/pkg/vmath"

// Vertex holds the per-vertex attributes a mesh source supplies: position,
// shading normal (unit length), and an optional texture coordinate.
type Vertex struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	UV       vmath.Vec2
	HasUV    bool
}

// NewVertex constructs a vertex, normalizing the supplied normal.
func NewVertex(position, normal vmath.Vec3) Vertex {
	return Vertex{Position: position, Normal: normal.Normalize()}
}

// WithUV returns a copy of v carrying the given texture coordinate.
func (v Vertex) WithUV(uv vmath.Vec2) Vertex {
	v.UV = uv
	v.HasUV = true
	return v
}

// Triangle is three vertices in counter-clockwise order. The stored
// per-vertex normals drive shading interpolation and need not equal the
// geometric normal.
type Triangle struct {
	V1, V2, V3 Vertex
}

// NewTriangle constructs a triangle from three vertices.
func NewTriangle(v1, v2, v3 Vertex) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// GeometricNormal returns normalize(cross(v2.pos-v1.pos, v3.pos-v1.pos)).
func (t Triangle) GeometricNormal() vmath.Vec3 {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Normalize()
}

// BoundingBox returns the AABB tightly enclosing the triangle's vertices.
func (t Triangle) BoundingBox() AABB {
	return FromPoints(t.V1.Position, t.V2.Position, t.V3.Position)
}

// epsilon is the rejection threshold for the Moller-Trumbore test, set to
// machine epsilon for float32 per spec.
const epsilon = 1.1920929e-7

// Intersect performs the Moller-Trumbore ray-triangle test, returning the
// hit distance and barycentric coordinates (u, v); the first barycentric
// coordinate is 1-u-v. ok is false for parallel rays, out-of-triangle
// barycentrics, or hits at or before the ray origin.
func (t Triangle) Intersect(r Ray) (hitT, u, v float32, ok bool) {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}
	invDet := 1 / det

	s := r.Origin.Sub(t.V1.Position)
	u = invDet * s.Dot(p)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = invDet * r.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	hitT = invDet * e2.Dot(q)
	if hitT <= epsilon {
		return 0, 0, 0, false
	}

	return hitT, u, v, true
}

// InterpolateNormal returns the barycentric interpolation of the triangle's
// per-vertex normals at (u, v), renormalized to unit length.
func (t Triangle) InterpolateNormal(u, v float32) vmath.Vec3 {
	w := 1 - u - v
	n := t.V1.Normal.Scale(w).Add(t.V2.Normal.Scale(u)).Add(t.V3.Normal.Scale(v))
	return n.Normalize()
}

// InterpolateUV returns the barycentric interpolation of the triangle's
// per-vertex UVs at (u, v), or the zero vector if any vertex lacks a UV.
func (t Triangle) InterpolateUV(u, v float32) vmath.Vec2 {
	if !t.V1.HasUV || !t.V2.HasUV || !t.V3.HasUV {
		return vmath.Vec2{}
	}
	w := 1 - u - v
	return t.V1.UV.Scale(w).Add(t.V2.UV.Scale(u)).Add(t.V3.UV.Scale(v))
}
