package material

import (
	"math"

	"github.com/ember-render/ember/pkg/core"
)

// Kind selects the shading behavior for a surface. Materials are a closed
// tagged variant dispatched by switch rather than an interface, which keeps
// the per-bounce hot path free of virtual dispatch.
type Kind int

const (
	Diffuse Kind = iota
	Metal
	Dielectric
)

// minRoughness keeps the metal lobe sharpness finite for mirror surfaces.
const minRoughness = 0.01

// dielectricIOR is the fixed index of refraction used for the Schlick term.
const dielectricIOR = 1.5

// EvaluateBRDF returns the reflectance for a given incoming/outgoing
// direction pair. It is a total function: an unrecognized kind falls back to
// the raw albedo rather than failing.
func EvaluateBRDF(inDir, outDir, normal, albedo core.Vec3, kind Kind, roughness float64) core.Vec3 {
	switch kind {
	case Diffuse:
		// Lambertian: albedo / π
		return albedo.Multiply(1.0 / math.Pi)

	case Metal:
		// Roughness-broadened specular lobe around the mirror direction:
		// pow(cos(alignment), sharpness) with sharpness = 20/roughness
		reflected := Reflect(inDir.Normalize(), normal)
		cosAlign := reflected.Dot(outDir.Normalize())
		if cosAlign <= 0 {
			return core.Vec3{}
		}
		sharpness := 20.0 / math.Max(roughness, minRoughness)
		return albedo.Multiply(math.Pow(cosAlign, sharpness))

	case Dielectric:
		// Schlick-weighted mix of a reflective and a transmissive-ish albedo
		// term. This is an approximation of glass, not physical refraction.
		cosTheta := math.Min(-inDir.Normalize().Dot(normal), 1.0)
		if cosTheta < 0 {
			cosTheta = 0
		}
		fresnel := Schlick(cosTheta, dielectricIOR)
		white := core.NewVec3(1, 1, 1)
		return white.Multiply(fresnel).Add(albedo.Multiply(1 - fresnel))

	default:
		return albedo
	}
}

// SampleDirection draws an outgoing direction for the indirect bounce. It is
// a total function: an unrecognized kind falls back to a hemisphere sample.
func SampleDirection(inDir, normal core.Vec3, kind Kind, roughness float64, rng *core.RandState) core.Vec3 {
	switch kind {
	case Diffuse:
		return rng.CosineDirection(normal)

	case Metal:
		// Mirror reflection perturbed by roughness
		reflected := Reflect(inDir.Normalize(), normal)
		perturbed := reflected.Add(rng.UnitVector().Multiply(roughness)).Normalize()
		if perturbed.Dot(normal) <= 0 {
			// Perturbation pushed the sample under the surface
			return reflected
		}
		return perturbed

	case Dielectric:
		// Schlick probability picks reflection; otherwise scatter into the
		// hemisphere on the far side as a stand-in for transmission.
		unitIn := inDir.Normalize()
		cosTheta := math.Min(-unitIn.Dot(normal), 1.0)
		if cosTheta < 0 {
			cosTheta = 0
		}
		if rng.NextFloat01() < Schlick(cosTheta, dielectricIOR) {
			return Reflect(unitIn, normal)
		}
		return rng.CosineDirection(normal.Negate())

	default:
		return rng.CosineDirection(normal)
	}
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Schlick calculates the Fresnel reflectance approximation for the given
// cosine and index of refraction
func Schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
