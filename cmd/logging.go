package cmd

import (
	"github.com/urfave/cli"

	"github.com/ember-render/ember/pkg/accum"
	"github.com/ember-render/ember/pkg/log"
	"github.com/ember-render/ember/pkg/renderer"
)

var logger = log.New("ember")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// frameOptions collects the renderer settings shared by the render and
// interactive commands.
func frameOptions(ctx *cli.Context) renderer.Options {
	// A negative ceiling must become 0 (the policy default), not wrap to a
	// huge uint32
	ceiling := ctx.Int("sample-ceiling")
	if ceiling < 0 {
		ceiling = 0
	}

	return renderer.Options{
		NumWorkers:  ctx.Int("workers"),
		MaxBounces:  ctx.Int("num-bounces"),
		MinRRBounce: ctx.Int("rr-bounces"),
		ResetPolicy: accum.Policy{
			CameraEpsilon: ctx.Float64("reset-epsilon"),
			MaxFrameGap:   ctx.Float64("max-frame-gap"),
			SampleCeiling: uint32(ceiling),
		},
		EnableBlur: ctx.Bool("blur"),
	}
}
