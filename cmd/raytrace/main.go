// Command raytrace loads a triangulated scene, builds a bounding volume
// hierarchy over it, and renders it to an image file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wadu-bvh/rtbvh/internal/config"
	intlog "github.com/wadu-bvh/rtbvh/internal/log"
	"github.com/wadu-bvh/rtbvh/pkg/bvh"
	"github.com/wadu-bvh/rtbvh/pkg/camera"
	"github.com/wadu-bvh/rtbvh/pkg/imageio"
	"github.com/wadu-bvh/rtbvh/pkg/mesh"
	"github.com/wadu-bvh/rtbvh/pkg/render"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Config{}
	var originFlag, targetFlag []float64
	var debugScene bool

	cmd := &cobra.Command{
		Use:   "raytrace",
		Short: "Render a triangulated scene using a BVH-accelerated ray tracer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(originFlag) == 3 {
				cfg.Origin = vmath.NewVec3(float32(originFlag[0]), float32(originFlag[1]), float32(originFlag[2]))
			}
			if len(targetFlag) == 3 {
				cfg.Target = vmath.NewVec3(float32(targetFlag[0]), float32(targetFlag[1]), float32(targetFlag[2]))
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, debugScene)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.ScenePath, "scene", "", "path to an STL or OBJ mesh file")
	flags.BoolVar(&debugScene, "debug-scene", false, "render a built-in test scene instead of --scene")
	flags.StringVar(&cfg.OutPath, "out", "out.png", "output image path")
	flags.StringVar((*string)(&cfg.Format), "format", string(imageio.FormatPNG), "output format: ppm, png, or jpegxl")
	flags.IntVar(&cfg.Width, "width", 800, "output image width in pixels")
	flags.IntVar(&cfg.Height, "height", 600, "output image height in pixels")
	flags.Float64SliceVar(&originFlag, "origin", []float64{0, 0, 5}, "camera origin as x,y,z")
	flags.Float64SliceVar(&targetFlag, "target", []float64{0, 0, 0}, "camera look-at target as x,y,z")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "enable debug-level logging")

	return cmd
}

func run(ctx context.Context, cfg config.Config, debugScene bool) error {
	base := intlog.NewDefault()
	if cfg.Verbose {
		base = base.Level(zerolog.DebugLevel)
	}

	meshLog := intlog.Component(base, "mesh")
	bvhLog := intlog.Component(base, "bvh")
	renderLog := intlog.Component(base, "render")

	encoder, err := imageio.EncoderFor(cfg.Format)
	if err != nil {
		return fmt.Errorf("selecting encoder: %w", err)
	}

	var loaded *mesh.Mesh
	if debugScene || cfg.ScenePath == "" {
		loaded = debugSceneMesh()
		meshLog.Info().Msg("using built-in debug scene")
	} else {
		loaded, err = loadScene(cfg.ScenePath, meshLog)
		if err != nil {
			return fmt.Errorf("loading scene: %w", err)
		}
	}

	tree, err := bvh.Build(loaded.Triangles)
	if err != nil {
		return fmt.Errorf("building bvh: %w", err)
	}

	stats := tree.ComputeStats()
	bvhLog.Info().
		Int("nodes", stats.NumNodes).
		Int("leaves", stats.NumLeaves).
		Int("triangles", stats.NumTriangles).
		Int("max_depth", stats.MaxDepth).
		Msg("built hierarchy")

	aspect := float32(cfg.Width) / float32(cfg.Height)
	cam := camera.New(cfg.Origin, cfg.Target, vmath.NewVec3(0, 1, 0), 60, aspect)

	driver := render.New(tree, cam, renderLog)
	surf, err := driver.Render(ctx, render.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		LightDir:   vmath.NewVec3(-0.3, -0.6, -0.7).Normalize(),
		Background: backgroundColor,
	})
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	out, err := os.Create(cfg.OutPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	if err := encoder.Encode(out, surf); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	renderLog.Info().Str("path", cfg.OutPath).Msg("wrote image")
	return nil
}

func loadScene(path string, log zerolog.Logger) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch extOf(path) {
	case "stl":
		return mesh.LoadSTL(f, log)
	case "obj":
		return mesh.LoadOBJ(f, log)
	default:
		return nil, fmt.Errorf("unrecognized mesh extension for %q (want .stl or .obj)", path)
	}
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return ""
}
