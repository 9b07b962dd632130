package imageio

import (
	"fmt"
	"image/png"
	"io"

	"github.com/wadu-bvh/rtbvh/pkg/surface"
)

// PNGEncoder writes the surface using the standard library's PNG codec.
type PNGEncoder struct{}

// Encode implements Encoder.
func (PNGEncoder) Encode(w io.Writer, s *surface.Surface) error {
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("png: encoding: %w", err)
	}
	return nil
}
