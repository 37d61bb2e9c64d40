package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/ember-render/ember/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ember"
	app.Usage = "progressive path tracer with interactive accumulation"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render the scene offline and write a PNG",
			Description: `
Accumulate a fixed number of progressive passes over the scene and resolve
the result to an 8-bit PNG.`,
			Flags: append(frameFlags(),
				cli.IntFlag{
					Name:  "spp",
					Value: 64,
					Usage: "progressive passes to accumulate",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "interactive",
			Usage: "render a continuously accumulating interactive view",
			Description: `
Open a window and render continuously. The image refines while the camera
holds still and restarts from a noisy first pass whenever it moves.`,
			Flags:  frameFlags(),
			Action: cmd.RenderInteractive,
		},
	}

	app.Run(os.Args)
}

func frameFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 512,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 512,
			Usage: "frame height",
		},
		cli.IntFlag{
			Name:  "num-bounces",
			Value: 6,
			Usage: "maximum path length",
		},
		cli.IntFlag{
			Name:  "rr-bounces",
			Value: 2,
			Usage: "first bounce eligible for russian roulette",
		},
		cli.Float64Flag{
			Name:  "reset-epsilon",
			Value: 0.01,
			Usage: "camera travel that restarts accumulation",
		},
		cli.Float64Flag{
			Name:  "max-frame-gap",
			Value: 0.5,
			Usage: "seconds between frames before history is stale",
		},
		cli.IntFlag{
			Name:  "sample-ceiling",
			Value: 500,
			Usage: "per-pixel sample cap before accumulation restarts",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "render workers (0 = one per CPU)",
		},
		cli.BoolFlag{
			Name:  "blur",
			Usage: "enable edge-preserving blur on resolve",
		},
	}
}
