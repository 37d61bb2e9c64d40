package renderer

import (
	"runtime"
	"sync"

	"github.com/ember-render/ember/pkg/accum"
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/integrator"
	"github.com/ember-render/ember/pkg/scene"
)

// TileTask is one tile's worth of pixels for a single frame.
type TileTask struct {
	Tile     accum.TileRecord
	Camera   *Camera
	Params   ComputeParams
	TaskID   int
	TimeBits uint32 // time folded into per-pixel seeds
}

// TileResult reports a completed tile.
type TileResult struct {
	TaskID  int
	Samples int
}

// WorkerPool traces tiles in parallel. Pixels are fully independent given
// their own RandState, so workers only share the read-only scene and the
// controller, whose tiles they never write concurrently.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates the pool and starts its workers. numWorkers <= 0
// uses the CPU count.
func NewWorkerPool(sc *scene.Scene, pi *integrator.PathIntegrator, controller *accum.Controller, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, 256),
		resultQueue: make(chan TileResult, 256),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(sc, pi, controller)
	}

	return wp
}

// NumWorkers returns the worker count.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Submit queues a tile task.
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Result blocks for a completed tile; ok is false once the pool is stopped.
func (wp *WorkerPool) Result() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Stop drains workers and closes the result channel.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// run is the worker loop: trace every pixel of the tile and blend its sample
// into the accumulation surface. Each pixel seeds its own random stream from
// its coordinates, the frame index and the time bits.
func (wp *WorkerPool) run(sc *scene.Scene, pi *integrator.PathIntegrator, controller *accum.Controller) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		samples := 0
		bounds := task.Tile.Bounds

		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rng := core.NewRandState(uint32(x), uint32(y), task.Params.FrameIndex, task.TimeBits)
				ray := task.Camera.GetRay(x, y)
				color := pi.Trace(ray, sc, &rng)
				controller.AddSample(x, y, color)
				samples++
			}
		}

		wp.resultQueue <- TileResult{TaskID: task.TaskID, Samples: samples}
	}
}
