package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wadu-bvh/rtbvh/pkg/surface"
)

// PPMEncoder writes the binary "P6" PPM format: a plain-text header
// followed by raw 8-bit RGB triples, row-major, top to bottom.
type PPMEncoder struct{}

// Encode implements Encoder.
func (PPMEncoder) Encode(w io.Writer, s *surface.Surface) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", s.Width(), s.Height()); err != nil {
		return fmt.Errorf("ppm: writing header: %w", err)
	}

	row := make([]byte, s.Width()*3)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.At(x, y)
			row[x*3+0] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("ppm: writing row %d: %w", y, err)
		}
	}

	return bw.Flush()
}
