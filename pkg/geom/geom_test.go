package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

func unitTriangle() Triangle {
	n := vmath.NewVec3(0, 0, 1)
	return NewTriangle(
		NewVertex(vmath.NewVec3(0, 0, 0), n),
		NewVertex(vmath.NewVec3(1, 0, 0), n),
		NewVertex(vmath.NewVec3(0, 1, 0), n),
	)
}

func TestTriangleDirectHit(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(vmath.NewVec3(0.25, 0.25, 1), vmath.NewVec3(0, 0, -1))

	hitT, u, v, ok := tri.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(1.0), hitT, 1e-4)

	point := r.At(hitT)
	assert.InDelta(t, float32(0.25), point.X, 1e-4)
	assert.InDelta(t, float32(0.25), point.Y, 1e-4)
	assert.InDelta(t, float32(0), point.Z, 1e-4)

	normal := tri.InterpolateNormal(u, v)
	assert.InDelta(t, float32(1), normal.Z, 1e-4)
}

func TestTriangleMiss(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(vmath.NewVec3(2, 2, 1), vmath.NewVec3(0, 0, -1))
	_, _, _, ok := tri.Intersect(r)
	assert.False(t, ok)
}

func TestTriangleBackFace(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(vmath.NewVec3(0.25, 0.25, -1), vmath.NewVec3(0, 0, 1))
	hitT, _, _, ok := tri.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(1.0), hitT, 1e-4)
}

func TestAABBHitSlabTest(t *testing.T) {
	box := AABB{Min: vmath.NewVec3(-1, -1, -1), Max: vmath.NewVec3(1, 1, 1)}
	r := NewRay(vmath.NewVec3(0, 0, 5), vmath.NewVec3(0, 0, -1))

	tEnter, ok := box.Hit(r)
	require.True(t, ok)
	assert.InDelta(t, float32(4), tEnter, 1e-5)
}

func TestAABBMiss(t *testing.T) {
	box := AABB{Min: vmath.NewVec3(-1, -1, -1), Max: vmath.NewVec3(1, 1, 1)}
	r := NewRay(vmath.NewVec3(5, 5, 5), vmath.NewVec3(0, 0, -1))
	_, ok := box.Hit(r)
	assert.False(t, ok)
}

func TestAABBOriginInsideIsNegative(t *testing.T) {
	box := AABB{Min: vmath.NewVec3(-1, -1, -1), Max: vmath.NewVec3(1, 1, 1)}
	r := NewRay(vmath.NewVec3(0, 0, 0), vmath.NewVec3(0, 0, -1))
	tEnter, ok := box.Hit(r)
	require.True(t, ok)
	assert.LessOrEqual(t, tEnter, float32(0))
}

func TestAABBAxisAlignedRayDoesNotPanic(t *testing.T) {
	box := AABB{Min: vmath.NewVec3(-1, -1, -1), Max: vmath.NewVec3(1, 1, 1)}
	r := NewRay(vmath.NewVec3(0, 0, 5), vmath.NewVec3(0, 0, -1))
	assert.NotPanics(t, func() {
		box.Hit(r)
	})
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: vmath.NewVec3(0, 0, 0), Max: vmath.NewVec3(1, 1, 1)}
	b := AABB{Min: vmath.NewVec3(-1, 2, 0), Max: vmath.NewVec3(2, 3, 1)}
	u := a.Union(b)
	assert.Equal(t, vmath.NewVec3(-1, 0, 0), u.Min)
	assert.Equal(t, vmath.NewVec3(2, 3, 1), u.Max)
}
