// Package imageio encodes a rendered surface.Surface to an output format.
// Supported formats are PPM and PNG; JPEG-XL is recognized as a
// configuration value but rejected by EncoderFor (see errors.go).
package imageio

import (
	"fmt"
	"io"

	"github.com/wadu-bvh/rtbvh/pkg/surface"
)

// Encoder writes a surface to w in a specific format.
type Encoder interface {
	Encode(w io.Writer, s *surface.Surface) error
}

// Format names the supported output encodings.
type Format string

const (
	FormatPPM    Format = "ppm"
	FormatPNG    Format = "png"
	FormatJPEGXL Format = "jpegxl"
)

// EncoderFor returns the Encoder for the given format name.
func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case FormatPPM:
		return PPMEncoder{}, nil
	case FormatPNG:
		return PNGEncoder{}, nil
	case FormatJPEGXL:
		return nil, ErrJPEGXLUnsupported
	default:
		return nil, fmt.Errorf("imageio: unknown format %q", f)
	}
}
