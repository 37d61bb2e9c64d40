package geometry

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/material"
)

// Triangle is a plain-struct primitive that doubles as an area light when
// IsLight is set. Degenerate triangles (edges summing to ~0) are inactive.
type Triangle struct {
	P1, P2, P3 core.Vec3
	Color      core.Vec3
	IsLight    bool
	Intensity  float64 // emitted radiance scale, meaningful only for lights
	Material   material.Kind
	Roughness  float64
}

// Active reports whether this slot holds a real triangle.
func (t Triangle) Active() bool {
	edgeSum := t.P2.Subtract(t.P1).Length() + t.P3.Subtract(t.P2).Length() + t.P1.Subtract(t.P3).Length()
	return edgeSum > epsilon
}

// Area returns the triangle's surface area, 0.5 * |e1 × e2|.
func (t Triangle) Area() float64 {
	e1 := t.P2.Subtract(t.P1)
	e2 := t.P3.Subtract(t.P1)
	return 0.5 * e1.Cross(e2).Length()
}

// Emission returns the emitted radiance of the surface, zero for non-lights.
func (t Triangle) Emission() core.Vec3 {
	if !t.IsLight {
		return core.Vec3{}
	}
	return t.Color.Multiply(t.Intensity)
}

// Intersect runs Möller–Trumbore without back-face culling and attaches the
// triangle's surface attributes to the hit.
func (t Triangle) Intersect(ray core.Ray) RayHit {
	dist, normal, ok := intersectTriangle(ray, t.P1, t.P2, t.P3)
	if !ok {
		return Miss()
	}
	return RayHit{
		Hit:       true,
		Dist:      dist,
		Normal:    normal,
		Albedo:    t.Color,
		Emission:  t.Emission(),
		Material:  t.Material,
		Roughness: t.Roughness,
	}
}

// intersectTriangle is the bare Möller–Trumbore test over three vertices.
// It carries no surface attributes, so quads can reuse it and attach their
// own material to whichever half wins.
func intersectTriangle(ray core.Ray, v0, v1, v2 core.Vec3) (dist float64, normal core.Vec3, ok bool) {
	dir := ray.Direction.Normalize()

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := dir.Cross(edge2)
	det := edge1.Dot(h)

	// Near-parallel: no hit rather than a NaN from the 1/det below
	if det > -epsilon && det < epsilon {
		return 0, core.Vec3{}, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(v0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, core.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := invDet * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, core.Vec3{}, false
	}

	t := invDet * edge2.Dot(q)
	if t <= 0 {
		return 0, core.Vec3{}, false
	}

	normal = faceForward(edge1.Cross(edge2).Normalize(), dir)
	return t, normal, true
}
