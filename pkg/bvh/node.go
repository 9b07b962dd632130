// Package bvh builds and traverses a bounding volume hierarchy over a
// triangle scene: a flat, depth-first array of nodes paired with a
// permuted triangle array, sized for cache-friendly traversal.
package bvh

import "github.com/wadu-bvh/rtbvh/pkg/geom"

// Node is one entry in the flattened, depth-first BVH array, sized to a
// 32-byte footprint (AABB: 6 float32 = 24 bytes, plus two uint32 = 8
// bytes). There is no separate discriminator field: NumTriangles == 0
// means the node is interior and Offset is its right-child offset (the
// left child is always the next entry); NumTriangles > 0 means the node
// is a leaf and Offset is the start of its span into the BVH's permuted
// Triangles array. A leaf therefore always holds at least one triangle,
// so the two cases never collide.
type Node struct {
	Bounds geom.AABB

	// Offset is RightChildOffset for an interior node, TriangleOffset for
	// a leaf.
	Offset       uint32
	NumTriangles uint32
}

// IsLeaf reports whether n is a leaf node.
func (n Node) IsLeaf() bool {
	return n.NumTriangles > 0
}

// RightChildOffset returns the index, relative to n, of n's right child.
// Valid only when n is interior.
func (n Node) RightChildOffset() uint32 {
	return n.Offset
}

// TriangleOffset returns the start of n's span into the BVH's permuted
// Triangles array. Valid only when n is a leaf.
func (n Node) TriangleOffset() uint32 {
	return n.Offset
}

// BVH is a built acceleration structure: a flat node array in depth-first
// pre-order, and the triangle array permuted to match leaf spans. Index 0
// is always the root; an empty BVH (zero triangles) cannot be constructed
// (see ErrEmptyScene).
type BVH struct {
	Nodes     []Node
	Triangles []geom.Triangle
}

// Root returns the hierarchy's root node.
func (b *BVH) Root() Node {
	return b.Nodes[0]
}

// LeafTriangles returns the slice of triangles a leaf node spans.
func (b *BVH) LeafTriangles(n Node) []geom.Triangle {
	return b.Triangles[n.TriangleOffset() : n.TriangleOffset()+n.NumTriangles]
}
