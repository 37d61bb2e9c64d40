package geometry

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/material"
)

// SuperFar is the sentinel distance for a miss. Scene iteration starts its
// nearest-hit search from this value.
const SuperFar = 1e6

// epsilon rejects near-parallel ray/triangle configurations before the
// determinant division can produce NaN or Inf.
const epsilon = 1e-8

// RayHit is the value returned by every intersector. Misses carry the
// SuperFar sentinel distance; accepted hits always have Dist > 0.
type RayHit struct {
	Hit       bool
	Dist      float64
	Normal    core.Vec3 // unit length, faces the incoming ray
	Albedo    core.Vec3
	Emission  core.Vec3 // zero unless the surface is emissive
	Material  material.Kind
	Roughness float64
}

// Miss returns the no-hit record used to seed nearest-hit searches.
func Miss() RayHit {
	return RayHit{Hit: false, Dist: SuperFar}
}

// Closer reports whether h beats best in a nearest-hit selection.
func (h RayHit) Closer(best RayHit) bool {
	return h.Hit && h.Dist > 0 && h.Dist < best.Dist
}

// faceForward flips the normal so it opposes the ray direction. Intersection
// math produces geometric normals; shading expects them on the visible side.
func faceForward(normal, rayDir core.Vec3) core.Vec3 {
	if normal.Dot(rayDir) > 0 {
		return normal.Negate()
	}
	return normal
}
