package material

import (
	"math"
	"testing"

	"github.com/ember-render/ember/pkg/core"
)

func TestEvaluateBRDF_Diffuse(t *testing.T) {
	albedo := core.NewVec3(0.6, 0.3, 0.9)
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(0, -1, 0)
	outDir := core.NewVec3(0, 1, 0)

	got := EvaluateBRDF(inDir, outDir, normal, albedo, Diffuse, 0.5)
	want := albedo.Multiply(1.0 / math.Pi)

	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("diffuse BRDF = %v, want albedo/pi = %v", got, want)
	}
}

func TestEvaluateBRDF_MetalPeaksAtMirror(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(1, -1, 0).Normalize()
	mirror := Reflect(inDir, normal)
	offAxis := mirror.Add(core.NewVec3(0.3, 0.1, 0.2)).Normalize()

	atMirror := EvaluateBRDF(inDir, mirror, normal, albedo, Metal, 0.2)
	offMirror := EvaluateBRDF(inDir, offAxis, normal, albedo, Metal, 0.2)

	if atMirror.Luminance() <= offMirror.Luminance() {
		t.Errorf("metal lobe should peak at mirror direction: mirror=%v off=%v", atMirror, offMirror)
	}
	// Perfect alignment evaluates to the full albedo
	if math.Abs(atMirror.X-albedo.X) > 1e-9 {
		t.Errorf("mirror-aligned lobe = %v, want %v", atMirror, albedo)
	}
}

func TestEvaluateBRDF_MetalBelowLobeIsBlack(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(0, -1, 0)
	// Opposite of the mirror direction has negative alignment
	outDir := core.NewVec3(0, -1, 0)

	got := EvaluateBRDF(inDir, outDir, normal, core.NewVec3(1, 1, 1), Metal, 0.1)
	if !got.IsZero() {
		t.Errorf("expected zero contribution behind the lobe, got %v", got)
	}
}

func TestEvaluateBRDF_TotalForUnknownKind(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.6)
	got := EvaluateBRDF(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), albedo, Kind(99), 0.5)
	if got != albedo {
		t.Errorf("unknown kind should fall back to raw albedo, got %v", got)
	}
}

func TestSampleDirection_DiffuseStaysAboveSurface(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	rng := core.NewRandState(3, 7, 0, 0)

	for i := 0; i < 1000; i++ {
		dir := SampleDirection(core.NewVec3(0, -1, 0), normal, Diffuse, 0, &rng)
		if dir.Dot(normal) < 0 {
			t.Fatalf("sample %d: diffuse direction %v below surface", i, dir)
		}
	}
}

func TestSampleDirection_SmoothMetalIsMirror(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(1, -1, 0).Normalize()
	rng := core.NewRandState(1, 1, 0, 0)

	dir := SampleDirection(inDir, normal, Metal, 0, &rng)
	mirror := Reflect(inDir, normal)
	if dir.Subtract(mirror).Length() > 1e-9 {
		t.Errorf("roughness 0 metal sample = %v, want mirror %v", dir, mirror)
	}
}

func TestSampleDirection_RoughMetalNearMirror(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(0.2, -1, 0.1).Normalize()
	mirror := Reflect(inDir, normal)
	rng := core.NewRandState(8, 2, 0, 0)

	for i := 0; i < 500; i++ {
		dir := SampleDirection(inDir, normal, Metal, 0.3, &rng)
		// Perturbed samples stay within the roughness cone or fall back to mirror
		if dir.Dot(mirror) < 1.0-2*0.3 {
			t.Fatalf("sample %d: direction %v too far from mirror %v", i, dir, mirror)
		}
	}
}

func TestSampleDirection_TotalForUnknownKind(t *testing.T) {
	normal := core.NewVec3(0, 0, 1)
	rng := core.NewRandState(4, 4, 0, 0)

	dir := SampleDirection(core.NewVec3(0, 0, -1), normal, Kind(42), 0, &rng)
	if math.Abs(dir.Length()-1.0) > 1e-9 {
		t.Errorf("fallback sample should be unit length, got %v", dir.Length())
	}
	if dir.Dot(normal) < 0 {
		t.Errorf("fallback sample %v should lie in the normal hemisphere", dir)
	}
}

func TestSampleDirection_DielectricAlwaysReturns(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	inDir := core.NewVec3(0.5, -1, 0.2).Normalize()
	rng := core.NewRandState(6, 6, 0, 0)

	reflections, scatters := 0, 0
	mirror := Reflect(inDir, normal)
	for i := 0; i < 2000; i++ {
		dir := SampleDirection(inDir, normal, Dielectric, 0, &rng)
		if dir.Length() < 1e-9 {
			t.Fatalf("sample %d: degenerate direction", i)
		}
		if dir.Subtract(mirror).Length() < 1e-9 {
			reflections++
		} else if dir.Dot(normal) < 0 {
			scatters++
		}
	}
	// Both branches of the Schlick mix should be exercised
	if reflections == 0 || scatters == 0 {
		t.Errorf("expected both reflection and transmission scatter, got %d/%d", reflections, scatters)
	}
}
