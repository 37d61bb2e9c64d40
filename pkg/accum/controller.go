package accum

import (
	"image"

	"github.com/ember-render/ember/pkg/core"
)

// Accumulation policy constants. TileSize matches the 16x16 screen tiles the
// dispatch is grouped into; the reset thresholds bound how stale or drifted
// the history may get before it is discarded.
const (
	TileSize      = 16
	CameraEpsilon = 0.01 // world units of camera travel that invalidate history
	MaxFrameGap   = 0.5  // seconds between frames before history is stale
	SampleCeiling = 500  // hard cap to bound numerical drift
	DisplayGamma  = 2.2
)

// Policy holds the reset thresholds. The zero value of any field falls back
// to the package default, so callers only override what they tune.
type Policy struct {
	CameraEpsilon float64
	MaxFrameGap   float64
	SampleCeiling uint32
}

// DefaultPolicy returns the standard reset thresholds.
func DefaultPolicy() Policy {
	return Policy{
		CameraEpsilon: CameraEpsilon,
		MaxFrameGap:   MaxFrameGap,
		SampleCeiling: SampleCeiling,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.CameraEpsilon <= 0 {
		p.CameraEpsilon = d.CameraEpsilon
	}
	if p.MaxFrameGap <= 0 {
		p.MaxFrameGap = d.MaxFrameGap
	}
	if p.SampleCeiling == 0 {
		p.SampleCeiling = d.SampleCeiling
	}
	return p
}

// TileRecord is the per-tile bookkeeping entry: dispatch bounds, how many
// samples its pixels carry, and whether it still awaits its first sample
// after a reset. Radiance itself accumulates per pixel; tiles only group the
// bookkeeping and parallel dispatch.
type TileRecord struct {
	Index       int
	Bounds      image.Rectangle
	SampleCount uint32
	NeedsReset  bool
}

// Controller owns the accumulation surface: one running-average radiance
// value and sample count per pixel, plus the tile grid. Writes are safe for
// concurrent use as long as no two goroutines touch the same pixel, which
// the tile dispatch guarantees.
type Controller struct {
	width, height int
	colors        []core.Vec3
	counts        []uint32
	tiles         []TileRecord
	policy        Policy
}

// NewController allocates an accumulation surface with the default reset
// thresholds.
func NewController(width, height int) *Controller {
	return NewControllerWithPolicy(width, height, DefaultPolicy())
}

// NewControllerWithPolicy allocates an accumulation surface with custom reset
// thresholds. Zero-valued policy fields keep their defaults.
func NewControllerWithPolicy(width, height int, policy Policy) *Controller {
	c := &Controller{policy: policy.withDefaults()}
	c.Resize(width, height)
	return c
}

// Width returns the surface width in pixels.
func (c *Controller) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *Controller) Height() int { return c.height }

// Resize reallocates the surface and tile grid for a new resolution,
// discarding all history. A no-op when the resolution is unchanged.
func (c *Controller) Resize(width, height int) {
	if width == c.width && height == c.height && c.colors != nil {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width = width
	c.height = height
	c.colors = make([]core.Vec3, width*height)
	c.counts = make([]uint32, width*height)
	c.tiles = buildTileGrid(width, height)
}

// buildTileGrid covers the surface with TileSize x TileSize records, edge
// tiles clipped to the surface bounds.
func buildTileGrid(width, height int) []TileRecord {
	var tiles []TileRecord
	index := 0
	for y := 0; y < height; y += TileSize {
		for x := 0; x < width; x += TileSize {
			tiles = append(tiles, TileRecord{
				Index:      index,
				Bounds:     image.Rect(x, y, min(x+TileSize, width), min(y+TileSize, height)),
				NeedsReset: true,
			})
			index++
		}
	}
	return tiles
}

// ShouldReset decides whether accumulated history must be discarded before
// the next frame's samples are blended in.
func (c *Controller) ShouldReset(cameraDelta, elapsedSeconds float64, sampleCount uint32) bool {
	if cameraDelta > c.policy.CameraEpsilon {
		return true
	}
	if elapsedSeconds > c.policy.MaxFrameGap {
		return true
	}
	if sampleCount > c.policy.SampleCeiling {
		return true
	}
	return false
}

// Reset discards all history: fresh backing buffers are allocated rather
// than cleared in place so a concurrent reader of the previous frame's
// surface never observes partial writes.
func (c *Controller) Reset() {
	c.colors = make([]core.Vec3, c.width*c.height)
	c.counts = make([]uint32, c.width*c.height)
	for i := range c.tiles {
		c.tiles[i].SampleCount = 0
		c.tiles[i].NeedsReset = true
	}
}

// AddSample folds one radiance sample into a pixel's running average.
// Out-of-bounds coordinates are a no-op. The first sample after a reset
// replaces the stored value outright; later samples use the incremental
// mean, which stays numerically stable at large counts.
func (c *Controller) AddSample(x, y int, sample core.Vec3) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := y*c.width + x

	n := c.counts[i] + 1
	if n <= 1 {
		c.colors[i] = sample
	} else {
		delta := sample.Subtract(c.colors[i])
		c.colors[i] = c.colors[i].Add(delta.Multiply(1.0 / float64(n)))
	}
	c.counts[i] = n

	tile := c.tileAt(x, y)
	if tile != nil {
		if n > tile.SampleCount {
			tile.SampleCount = n
		}
		tile.NeedsReset = false
	}
}

func (c *Controller) tileAt(x, y int) *TileRecord {
	tilesPerRow := (c.width + TileSize - 1) / TileSize
	idx := (y/TileSize)*tilesPerRow + x/TileSize
	if idx < 0 || idx >= len(c.tiles) {
		return nil
	}
	return &c.tiles[idx]
}

// Value returns the accumulated radiance for a pixel; out-of-bounds reads
// return black.
func (c *Controller) Value(x, y int) core.Vec3 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return core.Vec3{}
	}
	return c.colors[y*c.width+x]
}

// PixelSamples returns the sample count for one pixel, 0 out of bounds.
func (c *Controller) PixelSamples(x, y int) uint32 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.counts[y*c.width+x]
}

// SampleCount returns the highest per-tile sample count, the controller's
// notion of "how converged is this surface".
func (c *Controller) SampleCount() uint32 {
	var maxCount uint32
	for i := range c.tiles {
		if c.tiles[i].SampleCount > maxCount {
			maxCount = c.tiles[i].SampleCount
		}
	}
	return maxCount
}

// SampleRange returns the lowest and highest per-tile sample counts; both
// are zero for an empty tile grid.
func (c *Controller) SampleRange() (minCount, maxCount uint32) {
	if len(c.tiles) == 0 {
		return 0, 0
	}
	minCount = c.tiles[0].SampleCount
	maxCount = c.tiles[0].SampleCount
	for i := range c.tiles[1:] {
		count := c.tiles[i+1].SampleCount
		if count < minCount {
			minCount = count
		}
		if count > maxCount {
			maxCount = count
		}
	}
	return minCount, maxCount
}

// Tiles exposes the tile records read-only for dispatch and compositing.
func (c *Controller) Tiles() []TileRecord {
	out := make([]TileRecord, len(c.tiles))
	copy(out, c.tiles)
	return out
}

// Resolve writes the gamma-corrected accumulation surface into dst. Pixels
// with no samples resolve to black.
func (c *Controller) Resolve(dst *image.RGBA) {
	bounds := dst.Bounds()
	for y := 0; y < c.height && y < bounds.Dy(); y++ {
		for x := 0; x < c.width && x < bounds.Dx(); x++ {
			v := c.colors[y*c.width+x].Clamp(0, 1).GammaCorrect(DisplayGamma)
			i := dst.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			dst.Pix[i] = uint8(v.X * 255.999)
			dst.Pix[i+1] = uint8(v.Y * 255.999)
			dst.Pix[i+2] = uint8(v.Z * 255.999)
			dst.Pix[i+3] = 255
		}
	}
}
