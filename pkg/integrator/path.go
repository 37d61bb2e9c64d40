package integrator

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/lights"
	"github.com/ember-render/ember/pkg/material"
	"github.com/ember-render/ember/pkg/scene"
)

// Config controls the bounce loop.
type Config struct {
	MaxBounces  int // inclusive bounce budget
	MinRRBounce int // first bounce eligible for Russian roulette
}

// DefaultConfig returns the settings used by the interactive renderer.
func DefaultConfig() Config {
	return Config{MaxBounces: 6, MinRRBounce: 2}
}

// PathIntegrator drives the per-sample bounce loop. It is stateless across
// invocations and safe for concurrent use; per-invocation randomness lives in
// the caller-owned RandState.
type PathIntegrator struct {
	config Config
}

// NewPathIntegrator creates a path integrator with the given config.
func NewPathIntegrator(config Config) *PathIntegrator {
	defaults := DefaultConfig()
	if config.MaxBounces <= 0 {
		config.MaxBounces = defaults.MaxBounces
	}
	if config.MinRRBounce <= 0 {
		config.MinRRBounce = defaults.MinRRBounce
	}
	return &PathIntegrator{config: config}
}

// Trace returns one radiance sample for the ray. The loop ordering is
// intersect, background/emission early-outs, direct light sampling, indirect
// sample, then Russian roulette; reordering changes the estimator's variance
// and bias.
func (p *PathIntegrator) Trace(ray core.Ray, sc *scene.Scene, rng *core.RandState) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	current := core.NewRay(ray.Origin, ray.Direction.Normalize())

	for bounce := 0; bounce <= p.config.MaxBounces; bounce++ {
		hit := sc.Intersect(current)

		// Escaped: pick up the weighted sky gradient and stop
		if !hit.Hit {
			sky := sc.Background(current.Direction).Multiply(sc.BackgroundWeight)
			radiance = radiance.Add(sky.MultiplyVec(throughput))
			break
		}

		// Direct hit on an emitter: collect and stop
		if !hit.Emission.IsZero() {
			radiance = radiance.Add(hit.Emission.MultiplyVec(throughput))
			break
		}

		point := current.At(hit.Dist)

		// Explicit light sampling term
		direct := lights.Direct(sc, point, hit.Normal, hit.Albedo, rng)
		radiance = radiance.Add(direct.MultiplyVec(throughput))

		// Indirect bounce through the shading model
		outDir := material.SampleDirection(current.Direction, hit.Normal, hit.Material, hit.Roughness, rng)
		brdf := material.EvaluateBRDF(current.Direction, outDir, hit.Normal, hit.Albedo, hit.Material, hit.Roughness)
		throughput = throughput.MultiplyVec(brdf)

		origin := point.Add(hit.Normal.Multiply(lights.ShadowBias))
		current = core.NewRay(origin, outDir)

		// Russian roulette once the short path prefix is guaranteed
		if bounce >= p.config.MinRRBounce {
			survival := min(throughput.MaxComponent(), 1.0)
			if survival <= 0 {
				break // dead path, never divide by zero
			}
			if rng.NextFloat01() > survival {
				break
			}
			throughput = throughput.Multiply(1.0 / survival)
		}
	}

	return radiance
}
