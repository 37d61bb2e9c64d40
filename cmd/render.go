package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/renderer"
	"github.com/ember-render/ember/pkg/scene"
)

// cornellEye and cornellTarget frame the standard view into the room.
var (
	cornellEye    = core.NewVec3(278, 278, -800)
	cornellTarget = core.NewVec3(278, 278, 0)
)

// RenderFrame accumulates a fixed number of passes offline and writes the
// resolved image as a PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Int("width")
	height := ctx.Int("height")
	passes := ctx.Int("spp")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	if passes <= 0 {
		passes = 1
	}

	sc := scene.NewCornellScene()
	r := renderer.NewFrameRenderer(sc, width, height, frameOptions(ctx))
	defer r.Stop()

	logger.Noticef("rendering %dx%d, %d passes", width, height, passes)
	start := time.Now()

	view := renderer.LookAtMatrix(cornellEye, cornellTarget, core.NewVec3(0, 1, 0))
	var stats []renderer.FrameStats
	for pass := 0; pass < passes; pass++ {
		// Synthetic clock: offline passes must not look like a stalled
		// interactive session, or slow passes would discard accumulation
		params := renderer.ComputeParams{
			Time:           float64(pass) * 0.016,
			Width:          width,
			Height:         height,
			FrameIndex:     uint32(pass),
			SampleCount:    r.Controller().SampleCount(),
			CameraPosition: cornellEye,
			ViewMatrix:     view,
			FovY:           math.Pi / 4,
		}
		stats = append(stats, r.RenderFrame(params))
	}

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	r.Resolve(frame)

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %v", out, err)
	}
	defer f.Close()

	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("encode %s: %v", out, err)
	}

	displayRenderStats(stats, time.Since(start))
	logger.Noticef("wrote frame to %s", out)
	return nil
}

// displayRenderStats prints a per-pass summary table. Long runs are elided to
// the first and last few passes.
func displayRenderStats(stats []renderer.FrameStats, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Samples", "Reset", "Render time"})

	const headTail = 5
	for i, stat := range stats {
		if len(stats) > 2*headTail && i == headTail {
			table.Append([]string{"...", "...", "...", "..."})
		}
		if len(stats) > 2*headTail && i >= headTail && i < len(stats)-headTail {
			continue
		}
		samples := fmt.Sprintf("%d", stat.TotalSamples)
		if stat.MinSamples != stat.TotalSamples {
			samples = fmt.Sprintf("%d-%d", stat.MinSamples, stat.TotalSamples)
		}
		table.Append([]string{
			fmt.Sprintf("%d", stat.FrameIndex),
			samples,
			fmt.Sprintf("%t", stat.Reset),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", total.String()})
	table.Render()

	logger.Noticef("render statistics\n%s", buf.String())
}
