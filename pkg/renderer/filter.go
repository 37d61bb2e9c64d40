package renderer

import (
	"image"
	"math"

	"github.com/ember-render/ember/pkg/accum"
	"github.com/ember-render/ember/pkg/core"
)

// luminanceSigma controls how quickly the blur weight falls off across
// luminance discontinuities. Small values keep geometric edges crisp.
const luminanceSigma = 0.1

// BlurEdgeAware runs a 3x3 luminance-weighted blur over colors and returns a
// new buffer. Neighbors whose luminance differs sharply from the center
// contribute little, so edges between surfaces survive while speckle in flat
// regions is averaged out.
func BlurEdgeAware(colors []core.Vec3, width, height int) []core.Vec3 {
	out := make([]core.Vec3, len(colors))
	if width <= 0 || height <= 0 {
		return out
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := colors[y*width+x]
			centerLum := center.Luminance()

			sum := core.Vec3{}
			totalWeight := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					neighbor := colors[ny*width+nx]
					diff := neighbor.Luminance() - centerLum
					weight := math.Exp(-(diff * diff) / (2 * luminanceSigma * luminanceSigma))
					sum = sum.Add(neighbor.Multiply(weight))
					totalWeight += weight
				}
			}

			if totalWeight > 0 {
				out[y*width+x] = sum.Multiply(1 / totalWeight)
			} else {
				out[y*width+x] = center
			}
		}
	}
	return out
}

// resolveColors gamma-corrects colors into dst, matching the controller's
// resolve path.
func resolveColors(colors []core.Vec3, width, height int, dst *image.RGBA) {
	bounds := dst.Bounds()
	for y := 0; y < height && y < bounds.Dy(); y++ {
		for x := 0; x < width && x < bounds.Dx(); x++ {
			v := colors[y*width+x].Clamp(0, 1).GammaCorrect(accum.DisplayGamma)
			i := dst.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			dst.Pix[i] = uint8(v.X * 255.999)
			dst.Pix[i+1] = uint8(v.Y * 255.999)
			dst.Pix[i+2] = uint8(v.Z * 255.999)
			dst.Pix[i+3] = 255
		}
	}
}
