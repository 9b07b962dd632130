package bvh

import (
	"sort"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
)

// primitive is the builder's working record for one triangle: its index
// into the caller-supplied slice (so the final permutation can be derived)
// and its precomputed bounds, which the builder reads many times during
// sorting and partitioning.
type primitive struct {
	index  int
	bounds geom.AABB
}

// buildNode is the builder's in-progress tree representation. It is
// flattened into the BVH's depth-first Node array only once the full tree
// is known, so the flattening pass can compute each interior node's right
// child offset in one traversal.
type buildNode struct {
	bounds      geom.AABB
	left, right *buildNode
	primStart   int
	primCount   int
}

func (n *buildNode) isLeaf() bool {
	return n.left == nil
}

// Build constructs a bounding volume hierarchy over the given triangles.
// The input order is not preserved: triangles are permuted into leaf-
// contiguous order as a side effect of partitioning. Build is
// single-threaded and deterministic: the same input always produces the
// same tree.
func Build(triangles []geom.Triangle) (*BVH, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyScene
	}

	prims := make([]primitive, len(triangles))
	for i, tri := range triangles {
		b := tri.BoundingBox()
		prims[i] = primitive{
			index:  i,
			bounds: b,
		}
	}

	root := buildRange(prims, 0, len(prims))

	permuted := make([]geom.Triangle, len(triangles))
	for i, p := range prims {
		permuted[i] = triangles[p.index]
	}

	nodes := make([]Node, 0, 2*len(triangles))
	flatten(root, &nodes)

	return &BVH{Nodes: nodes, Triangles: permuted}, nil
}

// buildRange recursively partitions prims[start:start+count] into a
// subtree, in place. It returns the in-progress tree node; prims is
// reordered as a side effect so that each leaf's triangles end up
// contiguous.
func buildRange(prims []primitive, start, count int) *buildNode {
	span := prims[start : start+count]

	bounds := geom.EmptyAABB()
	for _, p := range span {
		bounds = bounds.Union(p.bounds)
	}

	if count <= 2 {
		return &buildNode{bounds: bounds, primStart: start, primCount: count}
	}

	axis, mid, ok := chooseSplit(span)
	if !ok {
		return &buildNode{bounds: bounds, primStart: start, primCount: count}
	}

	sortByMinAxis(span, axis)

	left := buildRange(prims, start, mid)
	right := buildRange(prims, start+mid, count-mid)

	return &buildNode{bounds: bounds, left: left, right: right}
}

// chooseSplit evaluates a median partition on each of the three axes and
// picks the one with the lowest combined SAH score (the plain sum of each
// child's bounding-volume score). It sorts a scratch copy per axis so the
// caller's span is left untouched until the winning axis is chosen. ok is
// false when every candidate axis degenerates to a zero-count child, in
// which case the caller should stop splitting and emit a leaf.
func chooseSplit(span []primitive) (axis, mid int, ok bool) {
	bestCost := float32(-1)
	bestAxis := -1
	bestMid := -1

	scratch := make([]primitive, len(span))

	for a := 0; a < 3; a++ {
		copy(scratch, span)
		sortByMinAxis(scratch, a)

		m := len(scratch) / 2
		if m == 0 || m == len(scratch) {
			continue
		}

		leftBounds := geom.EmptyAABB()
		for _, p := range scratch[:m] {
			leftBounds = leftBounds.Union(p.bounds)
		}
		rightBounds := geom.EmptyAABB()
		for _, p := range scratch[m:] {
			rightBounds = rightBounds.Union(p.bounds)
		}

		cost := leftBounds.VolumeScore() + rightBounds.VolumeScore()

		if bestAxis == -1 || cost < bestCost {
			bestCost = cost
			bestAxis = a
			bestMid = m
		}
	}

	if bestAxis == -1 {
		return 0, 0, false
	}
	return bestAxis, bestMid, true
}

// sortByMinAxis sorts span in place by each primitive's AABB minimum
// coordinate along the given axis, breaking ties by primitive index so
// that Build is deterministic.
func sortByMinAxis(span []primitive, axis int) {
	sort.SliceStable(span, func(i, j int) bool {
		mi := span[i].bounds.Min.Component(axis)
		mj := span[j].bounds.Min.Component(axis)
		if mi != mj {
			return mi < mj
		}
		return span[i].index < span[j].index
	})
}

// flatten walks the in-progress tree depth-first and appends it to nodes,
// producing the compact pre-order layout Node.RightChildOffset depends on:
// a node's left child is always the very next entry, and its right child
// sits RightChildOffset entries later.
func flatten(n *buildNode, nodes *[]Node) int {
	self := len(*nodes)
	*nodes = append(*nodes, Node{Bounds: n.bounds})

	if n.isLeaf() {
		(*nodes)[self].Offset = uint32(n.primStart)
		(*nodes)[self].NumTriangles = uint32(n.primCount)
		return self
	}

	flatten(n.left, nodes)
	rightIndex := flatten(n.right, nodes)

	(*nodes)[self].Offset = uint32(rightIndex - self)
	return self
}
