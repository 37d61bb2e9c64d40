package geometry

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/material"
)

// Quad is four coplanar corners ordered so triangles (P0,P1,P2) and
// (P0,P2,P3) cover it. A quad with all corners at the origin or ~zero area
// marks an inactive slot.
type Quad struct {
	P0, P1, P2, P3 core.Vec3
	Color          core.Vec3
	Material       material.Kind
	Roughness      float64
}

// Active reports whether this slot holds a real quad.
func (q Quad) Active() bool {
	if q.P0.IsZero() && q.P1.IsZero() && q.P2.IsZero() && q.P3.IsZero() {
		return false
	}
	return q.area() > epsilon
}

func (q Quad) area() float64 {
	a := 0.5 * q.P1.Subtract(q.P0).Cross(q.P2.Subtract(q.P0)).Length()
	b := 0.5 * q.P2.Subtract(q.P0).Cross(q.P3.Subtract(q.P0)).Length()
	return a + b
}

// Intersect splits the quad into its two triangles, tests both, and returns
// the nearer valid hit carrying the quad's surface attributes.
func (q Quad) Intersect(ray core.Ray) RayHit {
	best := Miss()

	if dist, normal, ok := intersectTriangle(ray, q.P0, q.P1, q.P2); ok && dist < best.Dist {
		best = q.attach(dist, normal)
	}
	if dist, normal, ok := intersectTriangle(ray, q.P0, q.P2, q.P3); ok && dist < best.Dist {
		best = q.attach(dist, normal)
	}
	return best
}

func (q Quad) attach(dist float64, normal core.Vec3) RayHit {
	return RayHit{
		Hit:       true,
		Dist:      dist,
		Normal:    normal,
		Albedo:    q.Color,
		Material:  q.Material,
		Roughness: q.Roughness,
	}
}
