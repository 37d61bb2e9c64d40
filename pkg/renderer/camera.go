package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ember-render/ember/pkg/core"
)

// ComputeParams is the per-frame input supplied by the frame driver. The
// engine consumes it fresh every frame and never owns or rejects it.
type ComputeParams struct {
	Time           float64    // wall-clock seconds
	Width, Height  int        // output resolution
	FrameIndex     uint32     // monotonic frame counter, may wrap
	SampleCount    uint32     // accumulated samples before this frame
	CameraPosition core.Vec3  // world-space camera position
	ViewMatrix     mgl64.Mat4 // world-to-camera transform
	FovY           float64    // vertical field of view, radians
}

// LookAtMatrix builds a world-to-camera view matrix for the given eye,
// target and up vectors.
func LookAtMatrix(eye, center, up core.Vec3) mgl64.Mat4 {
	return mgl64.LookAtV(
		mgl64.Vec3{eye.X, eye.Y, eye.Z},
		mgl64.Vec3{center.X, center.Y, center.Z},
		mgl64.Vec3{up.X, up.Y, up.Z},
	)
}

// Camera turns pixel coordinates into world-space primary rays using the
// basis extracted from the frame's view matrix.
type Camera struct {
	origin     core.Vec3
	right      core.Vec3
	up         core.Vec3
	forward    core.Vec3
	tanHalfFov float64
	aspect     float64
	width      int
	height     int
	jitter     core.Vec2
}

// NewCamera derives the ray-generation basis for one frame. The rotation
// rows of the view matrix are the camera axes in world space; the camera
// looks down its local -Z.
func NewCamera(params ComputeParams) *Camera {
	m := params.ViewMatrix
	right := core.NewVec3(m.At(0, 0), m.At(0, 1), m.At(0, 2))
	up := core.NewVec3(m.At(1, 0), m.At(1, 1), m.At(1, 2))
	forward := core.NewVec3(m.At(2, 0), m.At(2, 1), m.At(2, 2)).Negate()

	width, height := params.Width, params.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	fov := params.FovY
	if fov <= 0 {
		fov = math.Pi / 4
	}

	// Low-discrepancy sub-pixel jitter, advanced with the accumulated
	// sample index so successive frames stratify across the pixel
	return &Camera{
		origin:     params.CameraPosition,
		right:      right,
		up:         up,
		forward:    forward,
		tanHalfFov: math.Tan(fov / 2),
		aspect:     float64(width) / float64(height),
		width:      width,
		height:     height,
		jitter: core.NewVec2(
			core.Halton(params.SampleCount+1, 0),
			core.Halton(params.SampleCount+1, 1),
		),
	}
}

// GetRay generates the jittered primary ray through pixel (px, py).
func (c *Camera) GetRay(px, py int) core.Ray {
	u := (float64(px)+c.jitter.X)/float64(c.width)*2 - 1
	v := 1 - (float64(py)+c.jitter.Y)/float64(c.height)*2

	dir := c.right.Multiply(u * c.tanHalfFov * c.aspect).
		Add(c.up.Multiply(v * c.tanHalfFov)).
		Add(c.forward)

	return core.NewRay(c.origin, dir.Normalize())
}
