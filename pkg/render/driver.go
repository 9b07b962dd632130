package render

import (
	"context"
	"image/color"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wadu-bvh/rtbvh/pkg/bvh"
	"github.com/wadu-bvh/rtbvh/pkg/camera"
	"github.com/wadu-bvh/rtbvh/pkg/surface"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// TileSize is the side length, in pixels, of each unit of work dispatched
// to the worker pool. Tiles keep cache locality reasonable without
// requiring per-pixel synchronization.
const TileSize = 32

// Options configures a render pass.
type Options struct {
	Width, Height int
	LightDir      vmath.Vec3
	Background    color.RGBA
	// Workers is the number of goroutines rendering tiles concurrently. A
	// value <= 0 defaults to runtime.GOMAXPROCS(0).
	Workers int
}

// tile is one rectangular unit of work.
type tile struct {
	x0, y0, x1, y1 int
}

// Driver renders a scene into a surface.Surface, dispatching tiles across
// a bounded goroutine pool. Traversal against the BVH is read-only, so
// concurrent workers never contend on anything but the output surface,
// and each worker only ever writes the pixels in its own tile.
type Driver struct {
	tree *bvh.BVH
	cam  camera.Camera
	log  zerolog.Logger
}

// New constructs a Driver for the given hierarchy and camera.
func New(tree *bvh.BVH, cam camera.Camera, log zerolog.Logger) *Driver {
	return &Driver{tree: tree, cam: cam, log: log}
}

// Render produces a fully-shaded surface according to opts. It returns an
// error only if a worker's context is canceled; rendering itself cannot
// fail once the BVH is built.
func (d *Driver) Render(ctx context.Context, opts Options) (*surface.Surface, error) {
	surf := surface.New(opts.Width, opts.Height)
	tiles := tilesFor(opts.Width, opts.Height)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	d.log.Debug().
		Int("width", opts.Width).
		Int("height", opts.Height).
		Int("tiles", len(tiles)).
		Int("workers", workers).
		Msg("starting render")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, tl := range tiles {
		tl := tl
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d.renderTile(surf, tl, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.log.Debug().Msg("render complete")
	return surf, nil
}

func (d *Driver) renderTile(surf *surface.Surface, tl tile, opts Options) {
	for y := tl.y0; y < tl.y1; y++ {
		for x := tl.x0; x < tl.x1; x++ {
			ndc := pixelToNDC(x, y, opts.Width, opts.Height)
			r := d.cam.Ray(ndc)
			c := Shade(d.tree, r, opts.LightDir, opts.Background)
			surf.Set(x, y, c)
		}
	}
}

// pixelToNDC maps an integer pixel center to normalized device
// coordinates in [-1, 1]^2, with (0, 0) at the image center.
func pixelToNDC(x, y, width, height int) vmath.Vec2 {
	u := (float32(x)+0.5)/float32(width)*2 - 1
	v := 1 - (float32(y)+0.5)/float32(height)*2
	return vmath.NewVec2(u, v)
}

func tilesFor(width, height int) []tile {
	var tiles []tile
	for y := 0; y < height; y += TileSize {
		for x := 0; x < width; x += TileSize {
			tiles = append(tiles, tile{
				x0: x,
				y0: y,
				x1: min(x+TileSize, width),
				y1: min(y+TileSize, height),
			})
		}
	}
	return tiles
}
