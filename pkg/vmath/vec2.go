package vmath

// Vec2 is a single-precision 2-component vector, used for texture
// coordinates.
type Vec2 struct {
	X, Y float32
}

// NewVec2 constructs a Vec2 from components.
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns v scaled by a scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}
