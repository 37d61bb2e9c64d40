package renderer

import "time"

// FrameStats summarizes one frame of rendering for logging and the CLI
// statistics table.
type FrameStats struct {
	FrameIndex   uint32        // frame counter echoed from the input params
	TotalPixels  int           // pixels traced this frame
	TotalSamples uint32        // highest per-tile sample count after this frame
	MinSamples   uint32        // lowest per-tile sample count after this frame
	Reset        bool          // whether history was discarded before this frame
	CameraDelta  float64       // camera travel since the previous frame
	RenderTime   time.Duration // wall time spent tracing
}
