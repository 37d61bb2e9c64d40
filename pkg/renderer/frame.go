package renderer

import (
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ember-render/ember/pkg/accum"
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/integrator"
	"github.com/ember-render/ember/pkg/log"
	"github.com/ember-render/ember/pkg/scene"
)

// Options configures a FrameRenderer.
type Options struct {
	NumWorkers  int          // 0 means one worker per CPU
	MaxBounces  int          // 0 means the integrator default
	MinRRBounce int          // first roulette bounce, 0 means the default
	ResetPolicy accum.Policy // zero fields keep the default thresholds
	EnableBlur  bool         // edge-preserving blur on resolve
}

// FrameRenderer drives one frame at a time: it decides whether accumulated
// history survives, regenerates the camera basis, fans tiles out to the
// worker pool and blends the results into the accumulation surface. It keeps
// no frame state beyond what reset detection needs.
type FrameRenderer struct {
	scene      *scene.Scene
	integrator *integrator.PathIntegrator
	controller *accum.Controller
	pool       *WorkerPool
	options    Options
	logger     log.Logger

	lastPosition core.Vec3
	lastView     mgl64.Mat4
	lastTime     float64
	hasHistory   bool
}

// NewFrameRenderer creates a renderer for the given scene at an initial
// resolution. The resolution follows the per-frame params afterwards.
func NewFrameRenderer(sc *scene.Scene, width, height int, options Options) *FrameRenderer {
	controller := accum.NewControllerWithPolicy(width, height, options.ResetPolicy)
	pi := integrator.NewPathIntegrator(integrator.Config{
		MaxBounces:  options.MaxBounces,
		MinRRBounce: options.MinRRBounce,
	})

	return &FrameRenderer{
		scene:      sc,
		integrator: pi,
		controller: controller,
		pool:       NewWorkerPool(sc, pi, controller, options.NumWorkers),
		options:    options,
		logger:     log.New("renderer"),
	}
}

// Controller exposes the accumulation surface, mainly for tests and the
// offline render loop.
func (r *FrameRenderer) Controller() *accum.Controller {
	return r.controller
}

// RenderFrame traces one frame described by params and returns its stats.
// The previous frame's history is kept unless the camera moved, too much
// wall time passed or the sample ceiling was hit.
func (r *FrameRenderer) RenderFrame(params ComputeParams) FrameStats {
	start := time.Now()

	r.controller.Resize(params.Width, params.Height)

	cameraDelta := 0.0
	elapsed := 0.0
	if r.hasHistory {
		// A change in orientation invalidates history just like travel does;
		// rotation entries move on the order of the rotation angle, so both
		// share one threshold.
		cameraDelta = params.CameraPosition.Subtract(r.lastPosition).Length()
		if rot := rotationDelta(params.ViewMatrix, r.lastView); rot > cameraDelta {
			cameraDelta = rot
		}
		elapsed = params.Time - r.lastTime
	}

	reset := !r.hasHistory || r.controller.ShouldReset(cameraDelta, elapsed, r.controller.SampleCount())
	if reset {
		r.controller.Reset()
		r.logger.Debugf("frame %d: history reset (delta=%.4f elapsed=%.3fs)", params.FrameIndex, cameraDelta, elapsed)
	}

	camera := NewCamera(params)
	timeBits := uint32(params.Time * 1000.0)

	tiles := r.controller.Tiles()
	go func() {
		for i, tile := range tiles {
			r.pool.Submit(TileTask{
				Tile:     tile,
				Camera:   camera,
				Params:   params,
				TaskID:   i,
				TimeBits: timeBits,
			})
		}
	}()

	pixels := 0
	for range tiles {
		result, ok := r.pool.Result()
		if !ok {
			break
		}
		pixels += result.Samples
	}

	r.lastPosition = params.CameraPosition
	r.lastView = params.ViewMatrix
	r.lastTime = params.Time
	r.hasHistory = true

	minSamples, maxSamples := r.controller.SampleRange()
	stats := FrameStats{
		FrameIndex:   params.FrameIndex,
		TotalPixels:  pixels,
		TotalSamples: maxSamples,
		MinSamples:   minSamples,
		Reset:        reset,
		CameraDelta:  cameraDelta,
		RenderTime:   time.Since(start),
	}

	r.logger.Debugf("frame %d: %d pixels, %d samples, %s", stats.FrameIndex, stats.TotalPixels, stats.TotalSamples, stats.RenderTime)
	return stats
}

// Resolve writes the current accumulation state into dst as gamma-corrected
// 8-bit color, optionally running the edge-preserving blur first.
func (r *FrameRenderer) Resolve(dst *image.RGBA) {
	if !r.options.EnableBlur {
		r.controller.Resolve(dst)
		return
	}

	width, height := r.controller.Width(), r.controller.Height()
	colors := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colors[y*width+x] = r.controller.Value(x, y)
		}
	}
	resolveColors(BlurEdgeAware(colors, width, height), width, height, dst)
}

// Stop shuts the worker pool down. The renderer is unusable afterwards.
func (r *FrameRenderer) Stop() {
	r.pool.Stop()
}

// rotationDelta is the largest entry change in the rotation block of two
// view matrices.
func rotationDelta(a, b mgl64.Mat4) float64 {
	maxDiff := 0.0
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			diff := math.Abs(a.At(row, col) - b.At(row, col))
			if diff > maxDiff {
				maxDiff = diff
			}
		}
	}
	return maxDiff
}
