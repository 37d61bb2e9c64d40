package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", NewVec3(1, 2, 3).Add(NewVec3(4, 5, 6)), NewVec3(5, 7, 9)},
		{"subtract", NewVec3(4, 5, 6).Subtract(NewVec3(1, 2, 3)), NewVec3(3, 3, 3)},
		{"scalar multiply", NewVec3(1, -2, 3).Multiply(2), NewVec3(2, -4, 6)},
		{"component multiply", NewVec3(1, 2, 3).MultiplyVec(NewVec3(2, 0.5, -1)), NewVec3(2, 1, -3)},
		{"negate", NewVec3(1, -2, 3).Negate(), NewVec3(-1, 2, -3)},
		{"cross x cross y", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"lerp midpoint", NewVec3(0, 0, 0).Lerp(NewVec3(2, 4, 6), 0.5), NewVec3(1, 2, 3)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_LengthAndNormalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if v.Length() != 5 {
		t.Errorf("Expected length 5, got %v", v.Length())
	}
	if v.LengthSquared() != 25 {
		t.Errorf("Expected squared length 25, got %v", v.LengthSquared())
	}

	unit := v.Normalize()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %v", unit.Length())
	}

	// Normalizing the zero vector must not produce NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if math.IsNaN(zero.X) || math.IsNaN(zero.Y) || math.IsNaN(zero.Z) {
		t.Errorf("Normalizing zero vector produced NaN: %v", zero)
	}
}

func TestVec3_DotOrthogonality(t *testing.T) {
	if d := NewVec3(1, 0, 0).Dot(NewVec3(0, 1, 0)); d != 0 {
		t.Errorf("Expected orthogonal dot 0, got %v", d)
	}
	if d := NewVec3(1, 2, 3).Dot(NewVec3(1, 2, 3)); d != 14 {
		t.Errorf("Expected self dot 14, got %v", d)
	}
}

func TestVec3_MaxComponentAndIsZero(t *testing.T) {
	if m := NewVec3(0.2, 0.9, 0.5).MaxComponent(); m != 0.9 {
		t.Errorf("Expected max component 0.9, got %v", m)
	}
	if !NewVec3(0, 0, 0).IsZero() {
		t.Error("Zero vector should report IsZero")
	}
	if NewVec3(0, 1e-9, 0).IsZero() {
		t.Error("Non-zero vector should not report IsZero")
	}
}

func TestVec3_Luminance(t *testing.T) {
	// White has luminance 1, the weights sum to 1
	if l := NewVec3(1, 1, 1).Luminance(); math.Abs(l-1) > 1e-9 {
		t.Errorf("Expected white luminance 1, got %v", l)
	}
	// Green dominates the perceptual weighting
	if NewVec3(0, 1, 0).Luminance() <= NewVec3(1, 0, 0).Luminance() {
		t.Error("Green should carry more luminance than red")
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	v := NewVec3(0.25, 0.5, 1.0).GammaCorrect(2.0)
	expected := NewVec3(0.5, math.Sqrt(0.5), 1.0)
	if v.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if p := ray.At(3); p.Subtract(NewVec3(1, 3, 0)).Length() > 1e-12 {
		t.Errorf("Expected (1,3,0), got %v", p)
	}
}
