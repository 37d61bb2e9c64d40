package renderer

import (
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/log"
)

const (
	// Coefficients converting cursor deltas to yaw/pitch angles.
	mouseSensitivityX = 0.005
	mouseSensitivityY = 0.005

	// World units per keypress. The scene is built on a 555-unit room.
	cameraMoveSpeed = 10.0
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// DisplayOptions configures the interactive window.
type DisplayOptions struct {
	Width  int
	Height int
	Title  string
	FovY   float64 // radians; 0 picks a default
}

// Display is an interactive window that drives the renderer one frame per
// vsync and lets the viewer fly the camera. Moving the camera discards the
// accumulated history, so the image sharpens whenever the viewer holds
// still.
type Display struct {
	renderer *FrameRenderer
	options  DisplayOptions
	logger   log.Logger

	window    *glfw.Window
	texFbo    uint32
	fbTexture uint32

	position core.Vec3
	yaw      float64
	pitch    float64

	lastCursorX float64
	lastCursorY float64
	dragging    bool

	frameIndex uint32
	frame      *image.RGBA
}

// NewDisplay opens the window and binds the GL texture the resolved frames
// are blitted from.
func NewDisplay(r *FrameRenderer, options DisplayOptions) (*Display, error) {
	if options.Width <= 0 || options.Height <= 0 {
		return nil, fmt.Errorf("display: invalid dimensions %dx%d", options.Width, options.Height)
	}
	if options.Title == "" {
		options.Title = "ember"
	}
	if options.FovY <= 0 {
		options.FovY = math.Pi / 4
	}

	d := &Display{
		renderer: r,
		options:  options,
		logger:   log.New("display"),
		position: core.NewVec3(278, 278, -800),
		frame:    image.NewRGBA(image.Rect(0, 0, options.Width, options.Height)),
	}

	if err := d.initGL(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Display) initGL() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("display: glfw init: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(d.options.Width, d.options.Height, d.options.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("display: create window: %v", err)
	}
	d.window = window
	d.window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("display: gl init: %v", err)
	}

	gl.GenTextures(1, &d.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(d.options.Width), int32(d.options.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &d.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, d.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, d.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	d.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	d.window.SetKeyCallback(d.onKeyEvent)
	d.window.SetMouseButtonCallback(d.onMouseEvent)
	d.window.SetCursorPosCallback(d.onCursorPosEvent)

	return nil
}

// Run renders frames until the window closes.
func (d *Display) Run() error {
	for !d.window.ShouldClose() {
		glfw.PollEvents()

		params := ComputeParams{
			Time:           glfw.GetTime(),
			Width:          d.options.Width,
			Height:         d.options.Height,
			FrameIndex:     d.frameIndex,
			SampleCount:    d.renderer.Controller().SampleCount(),
			CameraPosition: d.position,
			ViewMatrix:     LookAtMatrix(d.position, d.position.Add(d.forward()), core.NewVec3(0, 1, 0)),
			FovY:           d.options.FovY,
		}
		stats := d.renderer.RenderFrame(params)
		d.frameIndex++

		if stats.Reset {
			d.logger.Debugf("frame %d restarted accumulation", stats.FrameIndex)
		}

		d.renderer.Resolve(d.frame)

		gl.BindTexture(gl.TEXTURE_2D, d.fbTexture)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(d.options.Width), int32(d.options.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(d.frame.Pix))

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, d.texFbo)
		gl.BlitFramebuffer(0, 0, int32(d.options.Width), int32(d.options.Height), 0, int32(d.options.Height), int32(d.options.Width), 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		d.window.SwapBuffers()
	}
	return nil
}

// Close tears the window down.
func (d *Display) Close() {
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
	}
	glfw.Terminate()
}

// forward returns the unit view direction for the current yaw/pitch. Yaw 0,
// pitch 0 looks down +Z.
func (d *Display) forward() core.Vec3 {
	cosPitch := math.Cos(d.pitch)
	return core.NewVec3(
		cosPitch*math.Sin(d.yaw),
		math.Sin(d.pitch),
		cosPitch*math.Cos(d.yaw),
	)
}

func (d *Display) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	speed := cameraMoveSpeed
	if mods&glfw.ModShift == glfw.ModShift {
		speed *= 4
	}

	forward := d.forward()
	right := forward.Cross(core.NewVec3(0, 1, 0)).Normalize()

	switch key {
	case glfw.KeyEscape:
		d.window.SetShouldClose(true)
	case glfw.KeyW, glfw.KeyUp:
		d.position = d.position.Add(forward.Multiply(speed))
	case glfw.KeyS, glfw.KeyDown:
		d.position = d.position.Subtract(forward.Multiply(speed))
	case glfw.KeyA, glfw.KeyLeft:
		d.position = d.position.Subtract(right.Multiply(speed))
	case glfw.KeyD, glfw.KeyRight:
		d.position = d.position.Add(right.Multiply(speed))
	case glfw.KeyQ:
		d.position.Y -= speed
	case glfw.KeyE:
		d.position.Y += speed
	}
}

func (d *Display) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	if action == glfw.Press {
		d.lastCursorX, d.lastCursorY = w.GetCursorPos()
		d.dragging = true
	} else {
		d.dragging = false
	}
}

func (d *Display) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	if !d.dragging {
		return
	}

	d.yaw += (xPos - d.lastCursorX) * mouseSensitivityX
	d.pitch += (d.lastCursorY - yPos) * mouseSensitivityY
	d.pitch = math.Max(-math.Pi/2+0.01, math.Min(math.Pi/2-0.01, d.pitch))
	d.lastCursorX, d.lastCursorY = xPos, yPos
}
