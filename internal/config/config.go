// Package config defines and validates the renderer's runtime
// configuration, assembled from CLI flags in cmd/raytrace.
package config

import (
	"fmt"

	"github.com/wadu-bvh/rtbvh/pkg/imageio"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// Config is the fully-resolved set of options a render invocation needs.
type Config struct {
	// ScenePath is the mesh file to load; empty means use the built-in
	// debug scene instead.
	ScenePath string
	OutPath   string
	Format    imageio.Format

	Width, Height int

	Origin vmath.Vec3
	Target vmath.Vec3

	Verbose bool
}

// Validate checks the configuration for internally inconsistent values
// that would otherwise surface as a confusing failure deep in the render
// pipeline.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.OutPath == "" {
		return fmt.Errorf("config: output path is required")
	}
	switch c.Format {
	case imageio.FormatPPM, imageio.FormatPNG, imageio.FormatJPEGXL:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if c.Origin == c.Target {
		return fmt.Errorf("config: camera origin and target must differ")
	}
	return nil
}
