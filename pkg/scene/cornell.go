package scene

import (
	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/geometry"
	"github.com/ember-render/ember/pkg/material"
)

// NewCornellScene builds the compiled-in Cornell-box-like scene: a white room
// with colored side walls, two boxes, a metal sphere, a glass-ish triangle
// and a single triangular area light below the ceiling.
func NewCornellScene() *Scene {
	s := &Scene{
		BackgroundTop:    core.NewVec3(0.1, 0.12, 0.18),
		BackgroundBottom: core.NewVec3(0.02, 0.02, 0.03),
		BackgroundWeight: 1.0,
	}

	white := core.NewVec3(0.73, 0.73, 0.73)
	red := core.NewVec3(0.65, 0.05, 0.05)
	green := core.NewVec3(0.12, 0.45, 0.15)

	const box = 555.0

	// Room: floor, ceiling, back, left, right
	quads := []geometry.Quad{
		wall(v(0, 0, 0), v(box, 0, 0), v(box, 0, box), v(0, 0, box), white),       // floor
		wall(v(0, box, 0), v(box, box, 0), v(box, box, box), v(0, box, box), white), // ceiling
		wall(v(0, 0, box), v(box, 0, box), v(box, box, box), v(0, box, box), white), // back wall
		wall(v(0, 0, 0), v(0, 0, box), v(0, box, box), v(0, box, 0), red),           // left wall
		wall(v(box, 0, 0), v(box, 0, box), v(box, box, box), v(box, box, 0), green), // right wall
	}

	// Short box near the front right, tall box at the back left
	quads = append(quads, boxQuads(v(290, 0, 90), v(455, 165, 255), white)...)
	quads = append(quads, boxQuads(v(110, 0, 270), v(275, 330, 435), white)...)

	copy(s.Quads[:], quads)

	// Metal sphere resting on the short box
	s.Spheres[0] = geometry.Sphere{
		Center:    v(372, 225, 172),
		Radius:    60,
		Color:     core.NewVec3(0.85, 0.85, 0.9),
		Material:  material.Metal,
		Roughness: 0.1,
	}

	// Dielectric triangle leaning against the tall box
	s.Triangles[0] = geometry.Triangle{
		P1:        v(300, 0, 450),
		P2:        v(460, 0, 420),
		P3:        v(380, 200, 460),
		Color:     core.NewVec3(0.95, 0.95, 1.0),
		Material:  material.Dielectric,
		Roughness: 0,
	}

	// Area light just below the ceiling
	s.Lights[0] = geometry.Triangle{
		P1:        v(213, 554, 227),
		P2:        v(343, 554, 227),
		P3:        v(278, 554, 332),
		Color:     core.NewVec3(1.0, 0.95, 0.85),
		IsLight:   true,
		Intensity: 18,
	}

	return s
}

func v(x, y, z float64) core.Vec3 {
	return core.NewVec3(x, y, z)
}

func wall(p0, p1, p2, p3 core.Vec3, color core.Vec3) geometry.Quad {
	return geometry.Quad{
		P0: p0, P1: p1, P2: p2, P3: p3,
		Color:     color,
		Material:  material.Diffuse,
		Roughness: 0,
	}
}

// boxQuads returns the five visible faces of an axis-aligned box (the bottom
// face sits on the floor and is skipped).
func boxQuads(min, max core.Vec3, color core.Vec3) []geometry.Quad {
	return []geometry.Quad{
		// top
		wall(v(min.X, max.Y, min.Z), v(max.X, max.Y, min.Z), v(max.X, max.Y, max.Z), v(min.X, max.Y, max.Z), color),
		// front (toward the camera, -Z)
		wall(v(min.X, min.Y, min.Z), v(max.X, min.Y, min.Z), v(max.X, max.Y, min.Z), v(min.X, max.Y, min.Z), color),
		// back
		wall(v(min.X, min.Y, max.Z), v(max.X, min.Y, max.Z), v(max.X, max.Y, max.Z), v(min.X, max.Y, max.Z), color),
		// left
		wall(v(min.X, min.Y, min.Z), v(min.X, min.Y, max.Z), v(min.X, max.Y, max.Z), v(min.X, max.Y, min.Z), color),
		// right
		wall(v(max.X, min.Y, min.Z), v(max.X, min.Y, max.Z), v(max.X, max.Y, max.Z), v(max.X, max.Y, min.Z), color),
	}
}
