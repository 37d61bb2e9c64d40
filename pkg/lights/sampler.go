package lights

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/geometry"
	"github.com/ember-render/ember/pkg/scene"
)

// ShadowBias offsets shadow and bounce ray origins off the surface to avoid
// self-intersection.
const ShadowBias = 1e-3

// SamplePoint draws a uniformly distributed point on the light triangle by
// folding a unit-square sample into barycentric coordinates.
func SamplePoint(light geometry.Triangle, rng *core.RandState) core.Vec3 {
	u := rng.NextFloat01()
	v := rng.NextFloat01()
	if u+v > 1 {
		u, v = 1-u, 1-v
	}

	e1 := light.P2.Subtract(light.P1)
	e2 := light.P3.Subtract(light.P1)
	return light.P1.Add(e1.Multiply(u)).Add(e2.Multiply(v))
}

// InShadow casts a biased shadow ray toward the light sample and reports
// whether any geometry sits between the point and the light. The biased ray
// reaches the light's own surface at lightDistance-ShadowBias, so the
// occluder window ends a full bias short of that; otherwise the light
// self-shadows on rounding.
func InShadow(sc *scene.Scene, point, lightDir core.Vec3, lightDistance float64) bool {
	origin := point.Add(lightDir.Multiply(ShadowBias))
	hit := sc.Intersect(core.NewRay(origin, lightDir))
	return hit.Hit && hit.Dist > 0 && hit.Dist < lightDistance-2*ShadowBias
}

// Direct samples every active light once and accumulates the visible
// solid-angle-weighted contribution: emission * albedo * NdotL / d² * area.
func Direct(sc *scene.Scene, point, normal, albedo core.Vec3, rng *core.RandState) core.Vec3 {
	var total core.Vec3

	for i := range sc.Lights {
		light := &sc.Lights[i]
		if !light.Active() || !light.IsLight {
			continue
		}

		samplePoint := SamplePoint(*light, rng)
		toLight := samplePoint.Subtract(point)
		distance := toLight.Length()
		if distance < ShadowBias {
			continue
		}
		lightDir := toLight.Multiply(1.0 / distance)

		nDotL := normal.Dot(lightDir)
		if nDotL <= 0 {
			continue // light below the horizon for this normal
		}

		if InShadow(sc, point, lightDir, distance) {
			continue
		}

		falloff := 1.0 / (distance * distance)
		weight := nDotL * falloff * light.Area()
		total = total.Add(light.Emission().MultiplyVec(albedo).Multiply(weight))
	}

	return total
}
