package geometry

import (
	"math"

	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/material"
)

// Sphere is a plain-struct primitive. A radius <= 0 marks the slot inactive
// in the scene's fixed-capacity array.
type Sphere struct {
	Center    core.Vec3
	Radius    float64
	Color     core.Vec3
	Material  material.Kind
	Roughness float64
}

// Active reports whether this slot holds a real sphere.
func (s Sphere) Active() bool {
	return s.Radius > 0
}

// Intersect solves |O + tD - C|² = r² and returns the nearest positive root.
// If the smaller root is behind the origin the larger root is used, which
// permits viewing from inside the sphere.
func (s Sphere) Intersect(ray core.Ray) RayHit {
	dir := ray.Direction.Normalize()
	oc := ray.Origin.Subtract(s.Center)

	// a == 1 for a unit direction
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant <= 0 {
		return Miss()
	}

	sqrtD := math.Sqrt(discriminant)
	t := -halfB - sqrtD
	if t <= 0 {
		t = -halfB + sqrtD
	}
	if t <= 0 {
		return Miss()
	}

	point := ray.Origin.Add(dir.Multiply(t))
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	return RayHit{
		Hit:       true,
		Dist:      t,
		Normal:    faceForward(normal, dir),
		Albedo:    s.Color,
		Material:  s.Material,
		Roughness: s.Roughness,
	}
}
