// Package surface defines the pixel sink the renderer writes into: a
// simple RGBA framebuffer decoupled from any particular output format.
package surface

import (
	"image"
	"image/color"
)

// Surface is a writable RGBA framebuffer. It wraps image.RGBA so encoders
// in pkg/imageio can work with the standard image package directly.
type Surface struct {
	img *image.RGBA
}

// New allocates a surface of the given pixel dimensions.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the surface's pixel width.
func (s *Surface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface's pixel height.
func (s *Surface) Height() int {
	return s.img.Bounds().Dy()
}

// Set writes a pixel. x and y are 0-based, with (0, 0) at the top-left.
func (s *Surface) Set(x, y int, c color.RGBA) {
	s.img.SetRGBA(x, y, c)
}

// At returns the pixel at (x, y).
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Image exposes the underlying image.RGBA for encoders.
func (s *Surface) Image() *image.RGBA {
	return s.img
}
