package bvh

import (
	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// Intersection is the result of a successful nearest-hit query: the hit
// distance, the world-space hit point, the interpolated shading normal,
// and the interpolated texture coordinate.
type Intersection struct {
	T      float32
	Point  vmath.Vec3
	Normal vmath.Vec3
	UV     vmath.Vec2
}

// stackCapacity is a fixed stack depth sized generously for the expected
// tree depth of a balanced median-split BVH; Intersect falls back to a
// growable slice only if this is exceeded, which a well-formed tree should
// never do.
const stackCapacity = 64

// Intersect finds the nearest triangle the ray hits, if any. Traversal is
// read-only and safe to call concurrently from multiple goroutines against
// the same BVH, provided none of them mutate it.
//
// The walk is iterative and front-to-back: at each interior node it
// descends into whichever child the ray reaches first without pushing it
// onto the stack, pushing only the far child (and only if the ray could
// still reach it given the current best-so-far distance). Ties prefer the
// left child. This keeps the stack shallow and avoids exploring subtrees
// that can no longer improve on the closest hit found so far.
func (b *BVH) Intersect(r geom.Ray) (Intersection, bool) {
	if len(b.Nodes) == 0 {
		return Intersection{}, false
	}

	stack := make([]uint32, 0, stackCapacity)
	current := uint32(0)

	var best Intersection
	found := false

	for {
		node := b.Nodes[current]

		if tEnter, ok := node.Bounds.Hit(r); !ok || (found && tEnter >= best.T) {
			if len(stack) == 0 {
				break
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		if node.IsLeaf() {
			for _, tri := range b.LeafTriangles(node) {
				if t, u, v, ok := tri.Intersect(r); ok && (!found || t < best.T) {
					best = Intersection{
						T:      t,
						Point:  r.At(t),
						Normal: tri.InterpolateNormal(u, v),
						UV:     tri.InterpolateUV(u, v),
					}
					found = true
				}
			}
			if len(stack) == 0 {
				break
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			continue
		}

		leftIdx := current + 1
		rightIdx := current + node.RightChildOffset()

		leftT, leftHit := b.Nodes[leftIdx].Bounds.Hit(r)
		rightT, rightHit := b.Nodes[rightIdx].Bounds.Hit(r)

		if found {
			leftHit = leftHit && leftT < best.T
			rightHit = rightHit && rightT < best.T
		}

		switch {
		case leftHit && rightHit:
			if rightT < leftT {
				stack = append(stack, leftIdx)
				current = rightIdx
			} else {
				stack = append(stack, rightIdx)
				current = leftIdx
			}
		case leftHit:
			current = leftIdx
		case rightHit:
			current = rightIdx
		default:
			if len(stack) == 0 {
				return best, found
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return best, found
}
