package geom

import "github.com/wadu-bvh/rtbvh/pkg/vmath"

// AABB is an axis-aligned bounding box with the invariant Min <= Max
// component-wise.
type AABB struct {
	Min, Max vmath.Vec3
}

// EmptyAABB returns an AABB that contains nothing; the first Union with a
// real box replaces it.
func EmptyAABB() AABB {
	inf := float32(1e30)
	return AABB{
		Min: vmath.NewVec3(inf, inf, inf),
		Max: vmath.NewVec3(-inf, -inf, -inf),
	}
}

// FromPoints returns the AABB tightly enclosing the given points.
func FromPoints(points ...vmath.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Union returns the AABB bounding both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// UnionPoint returns the AABB bounding a and the given point.
func (a AABB) UnionPoint(p vmath.Vec3) AABB {
	return AABB{Min: a.Min.Min(p), Max: a.Max.Max(p)}
}

// Center returns the midpoint of the box.
func (a AABB) Center() vmath.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Extent returns the per-axis size of the box.
func (a AABB) Extent() vmath.Vec3 {
	return a.Max.Sub(a.Min)
}

// VolumeScore is the SAH surrogate this implementation uses: the box volume
// (max-min).x * .y * .z. It is not strictly surface area, but it is
// monotone in box size and therefore a valid comparative split score (spec
// open question, pinned to the volume variant; see DESIGN.md).
func (a AABB) VolumeScore() float32 {
	e := a.Extent()
	return e.X * e.Y * e.Z
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (a AABB) LongestAxis() int {
	e := a.Extent()
	if e.X > e.Y && e.X > e.Z {
		return 0
	}
	if e.Y > e.Z {
		return 1
	}
	return 2
}

// Hit performs the slab test and returns the distance at which the ray
// enters the box. A negative result means the ray origin already lies
// inside the box. ok is false when the ray misses entirely.
//
// The test is branch-free: it relies on IEEE-754 semantics of dividing by a
// zero direction component (producing +/-Inf) to make axis-aligned rays
// behave correctly without special-casing them.
func (a AABB) Hit(r Ray) (tEnter float32, ok bool) {
	invDir := r.Dir.Reciprocal()

	t1 := a.Min.Sub(r.Origin).Mul(invDir)
	t2 := a.Max.Sub(r.Origin).Mul(invDir)

	tCloseSlab := t1.Min(t2)
	tFarSlab := t1.Max(t2)

	tClose := max(tCloseSlab.X, tCloseSlab.Y, tCloseSlab.Z)
	tFar := min(tFarSlab.X, tFarSlab.Y, tFarSlab.Z)

	if tClose > tFar || tFar < 0 {
		return 0, false
	}
	return tClose, true
}

// Contains reports whether p lies within the box, within a small tolerance.
func (a AABB) Contains(p vmath.Vec3, tolerance float32) bool {
	return p.X >= a.Min.X-tolerance && p.X <= a.Max.X+tolerance &&
		p.Y >= a.Min.Y-tolerance && p.Y <= a.Max.Y+tolerance &&
		p.Z >= a.Min.Z-tolerance && p.Z <= a.Max.Z+tolerance
}

// ContainsAABB reports whether a contains b, within a small tolerance.
func (a AABB) ContainsAABB(b AABB, tolerance float32) bool {
	return a.Contains(b.Min, tolerance) && a.Contains(b.Max, tolerance)
}
