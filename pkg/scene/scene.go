package scene

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/geometry"
)

// Fixed primitive capacities. The scene is an arena of plain structs rebuilt
// wholesale per render configuration; unused slots stay zero-valued and are
// skipped as inactive during intersection.
const (
	MaxSpheres   = 4
	MaxQuads     = 16 // room (5) plus two boxes (10) fit with a slot to spare
	MaxTriangles = 4
	MaxLights    = 2
)

// Scene is the fixed collection of primitives for one render configuration,
// read-only during tracing.
type Scene struct {
	Spheres   [MaxSpheres]geometry.Sphere
	Quads     [MaxQuads]geometry.Quad
	Triangles [MaxTriangles]geometry.Triangle
	Lights    [MaxLights]geometry.Triangle

	// Sky gradient endpoints and the weight applied to escaped rays
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3
	BackgroundWeight float64
}

// Intersect tests the ray against every active primitive and returns the
// globally nearest valid hit, or a miss carrying the sentinel distance.
func (s *Scene) Intersect(ray core.Ray) geometry.RayHit {
	best := geometry.Miss()

	for i := range s.Spheres {
		if !s.Spheres[i].Active() {
			continue
		}
		if hit := s.Spheres[i].Intersect(ray); hit.Closer(best) {
			best = hit
		}
	}
	for i := range s.Quads {
		if !s.Quads[i].Active() {
			continue
		}
		if hit := s.Quads[i].Intersect(ray); hit.Closer(best) {
			best = hit
		}
	}
	for i := range s.Triangles {
		if !s.Triangles[i].Active() {
			continue
		}
		if hit := s.Triangles[i].Intersect(ray); hit.Closer(best) {
			best = hit
		}
	}
	for i := range s.Lights {
		if !s.Lights[i].Active() {
			continue
		}
		if hit := s.Lights[i].Intersect(ray); hit.Closer(best) {
			best = hit
		}
	}

	return best
}

// Background returns the sky gradient for an escaped ray direction.
func (s *Scene) Background(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return s.BackgroundBottom.Lerp(s.BackgroundTop, t)
}
