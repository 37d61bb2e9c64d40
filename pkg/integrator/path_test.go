package integrator

import (
	"math"
	"testing"

	"github.com/ember-render/ember/pkg/core"
	"github.com/ember-render/ember/pkg/geometry"
	"github.com/ember-render/ember/pkg/material"
	"github.com/ember-render/ember/pkg/scene"
)

func TestTrace_EmptySceneIsBackgroundOnly(t *testing.T) {
	// All primitive slots inactive: every sample must be exactly the sky
	// gradient with zero variance
	sc := &scene.Scene{
		BackgroundTop:    core.NewVec3(0.4, 0.5, 0.9),
		BackgroundBottom: core.NewVec3(1, 1, 1),
		BackgroundWeight: 1.0,
	}
	pi := NewPathIntegrator(Config{MaxBounces: 4})
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, 0.5, -1).Normalize())

	want := sc.Background(ray.Direction)
	for i := 0; i < 50; i++ {
		rng := core.NewRandState(uint32(i), 0, 0, 0)
		got := pi.Trace(ray, sc, &rng)
		if got.Subtract(want).Length() > 1e-12 {
			t.Fatalf("sample %d: got %v, want background %v with zero variance", i, got, want)
		}
	}
}

func TestTrace_BackgroundWeightScalesSky(t *testing.T) {
	sc := &scene.Scene{
		BackgroundTop:    core.NewVec3(1, 1, 1),
		BackgroundBottom: core.NewVec3(1, 1, 1),
		BackgroundWeight: 0.25,
	}
	pi := NewPathIntegrator(Config{MaxBounces: 2})
	rng := core.NewRandState(0, 0, 0, 0)

	got := pi.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), sc, &rng)
	want := core.NewVec3(0.25, 0.25, 0.25)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTrace_DirectEmitterHit(t *testing.T) {
	sc := &scene.Scene{BackgroundWeight: 1}
	sc.Lights[0] = geometry.Triangle{
		P1: core.NewVec3(-1, 2, -1), P2: core.NewVec3(1, 2, -1), P3: core.NewVec3(0, 2, 1),
		Color: core.NewVec3(1, 0.5, 0.25), IsLight: true, Intensity: 8,
	}
	pi := NewPathIntegrator(Config{MaxBounces: 4})
	rng := core.NewRandState(0, 0, 0, 0)

	got := pi.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), sc, &rng)
	want := sc.Lights[0].Emission()
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("emitter hit = %v, want emission %v (throughput 1)", got, want)
	}
}

func TestTrace_FloorReceivesDirectLight(t *testing.T) {
	// Diffuse floor quad with an emissive triangle above it, no occluders
	sc := &scene.Scene{BackgroundWeight: 0}
	sc.Quads[0] = geometry.Quad{
		P0: core.NewVec3(-5, 0, -5), P1: core.NewVec3(5, 0, -5),
		P2: core.NewVec3(5, 0, 5), P3: core.NewVec3(-5, 0, 5),
		Color: core.NewVec3(0.7, 0.7, 0.7), Material: material.Diffuse,
	}
	sc.Lights[0] = geometry.Triangle{
		P1: core.NewVec3(-1, 4, -1), P2: core.NewVec3(1, 4, -1), P3: core.NewVec3(0, 4, 1),
		Color: core.NewVec3(1, 1, 1), IsLight: true, Intensity: 20,
	}

	pi := NewPathIntegrator(Config{MaxBounces: 3})

	// Average a few samples: camera above the floor looking down
	var sum core.Vec3
	const n = 200
	for i := 0; i < n; i++ {
		rng := core.NewRandState(uint32(i), 1, 0, 0)
		ray := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0.05, -1, 0.05).Normalize())
		sum = sum.Add(pi.Trace(ray, sc, &rng))
	}
	mean := sum.Multiply(1.0 / n)
	if mean.Luminance() <= 0 {
		t.Errorf("lit floor should be bright, mean sample %v", mean)
	}
}

func TestTrace_ZeroThroughputTerminates(t *testing.T) {
	// A black box: every bounce multiplies throughput by zero albedo. Russian
	// roulette must terminate without dividing by zero and the result must be
	// finite black.
	sc := &scene.Scene{BackgroundWeight: 1, BackgroundTop: core.NewVec3(1, 1, 1), BackgroundBottom: core.NewVec3(1, 1, 1)}
	black := core.Vec3{}
	sc.Quads[0] = geometry.Quad{
		P0: core.NewVec3(-100, -10, -100), P1: core.NewVec3(100, -10, -100),
		P2: core.NewVec3(100, -10, 100), P3: core.NewVec3(-100, -10, 100),
		Color: black, Material: material.Diffuse,
	}
	sc.Quads[1] = geometry.Quad{
		P0: core.NewVec3(-100, 10, -100), P1: core.NewVec3(100, 10, -100),
		P2: core.NewVec3(100, 10, 100), P3: core.NewVec3(-100, 10, 100),
		Color: black, Material: material.Diffuse,
	}

	pi := NewPathIntegrator(Config{MaxBounces: 16})
	for i := 0; i < 100; i++ {
		rng := core.NewRandState(uint32(i), 3, 0, 0)
		got := pi.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0.1, 1, 0).Normalize()), sc, &rng)
		if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
			t.Fatalf("sample %d: non-finite radiance %v", i, got)
		}
		if !got.IsZero() {
			t.Fatalf("sample %d: black enclosure returned %v, want zero", i, got)
		}
	}
}

func TestTrace_BounceBudgetExhausted(t *testing.T) {
	// Mirror tunnel: two facing metal quads with roughness 0 bounce forever.
	// The loop must stop at the budget and return finite radiance.
	sc := &scene.Scene{BackgroundWeight: 1}
	mirror := core.NewVec3(0.9, 0.9, 0.9)
	sc.Quads[0] = geometry.Quad{
		P0: core.NewVec3(-10, -10, -5), P1: core.NewVec3(10, -10, -5),
		P2: core.NewVec3(10, 10, -5), P3: core.NewVec3(-10, 10, -5),
		Color: mirror, Material: material.Metal,
	}
	sc.Quads[1] = geometry.Quad{
		P0: core.NewVec3(-10, -10, 5), P1: core.NewVec3(10, -10, 5),
		P2: core.NewVec3(10, 10, 5), P3: core.NewVec3(-10, 10, 5),
		Color: mirror, Material: material.Metal,
	}

	pi := NewPathIntegrator(Config{MaxBounces: 5})
	rng := core.NewRandState(11, 4, 0, 0)
	got := pi.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), sc, &rng)

	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Errorf("budget exhaustion produced non-finite radiance %v", got)
	}
}

func TestNewPathIntegrator_DefaultsOnBadConfig(t *testing.T) {
	pi := NewPathIntegrator(Config{MaxBounces: 0})
	if pi.config.MaxBounces != DefaultConfig().MaxBounces {
		t.Errorf("zero bounce budget should fall back to default, got %d", pi.config.MaxBounces)
	}
	if pi.config.MinRRBounce != DefaultConfig().MinRRBounce {
		t.Errorf("zero roulette bounce should fall back to default, got %d", pi.config.MinRRBounce)
	}
}
