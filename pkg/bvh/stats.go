package bvh

import "github.com/wadu-bvh/rtbvh/pkg/geom"

// Stats summarizes a built hierarchy, mainly for logging and tests.
type Stats struct {
	NumNodes     int
	NumLeaves    int
	NumTriangles int
	MaxDepth     int
	RootAABB     geom.AABB
}

// ComputeStats walks the flattened node array and summarizes it.
func (b *BVH) ComputeStats() Stats {
	s := Stats{
		NumNodes:     len(b.Nodes),
		NumTriangles: len(b.Triangles),
	}
	if len(b.Nodes) == 0 {
		return s
	}
	s.RootAABB = b.Nodes[0].Bounds
	s.MaxDepth = depthOf(b, 0, 0)
	for _, n := range b.Nodes {
		if n.IsLeaf() {
			s.NumLeaves++
		}
	}
	return s
}

func depthOf(b *BVH, index uint32, depth int) int {
	node := b.Nodes[index]
	if node.IsLeaf() {
		return depth
	}
	left := index + 1
	right := index + node.RightChildOffset()
	l := depthOf(b, left, depth+1)
	r := depthOf(b, right, depth+1)
	if l > r {
		return l
	}
	return r
}
