package cmd

import (
	"fmt"
	"math"

	"github.com/urfave/cli"

	"github.com/ember-render/ember/pkg/renderer"
	"github.com/ember-render/ember/pkg/scene"
)

// RenderInteractive opens a window and renders continuously, resetting
// accumulation whenever the viewer moves the camera.
func RenderInteractive(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	sc := scene.NewCornellScene()
	r := renderer.NewFrameRenderer(sc, width, height, frameOptions(ctx))
	defer r.Stop()

	display, err := renderer.NewDisplay(r, renderer.DisplayOptions{
		Width:  width,
		Height: height,
		Title:  "ember",
		FovY:   math.Pi / 4,
	})
	if err != nil {
		return err
	}
	defer display.Close()

	logger.Noticef("interactive session %dx%d; drag to look, WASD to move, ESC to quit", width, height)
	return display.Run()
}
