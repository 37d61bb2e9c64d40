package core

import "math"

// RandState is a 32-bit pseudo-random stream advanced with a Wang hash
// avalanche on every draw. Each pixel invocation owns its own state word and
// threads it by pointer through the call chain, so parallel pixel evaluation
// never shares generator state.
type RandState uint32

// NewRandState seeds a stream for one pixel invocation. Pixel coordinates,
// frame index and time bits are mixed with distinct odd constants so adjacent
// pixels and consecutive frames get decorrelated sequences.
func NewRandState(x, y, frameIndex, timeBits uint32) RandState {
	seed := x*1973 + y*9277 + frameIndex*26699 + timeBits*30011 + 1
	s := RandState(seed)
	s.NextUint() // burn one draw so nearby seeds diverge immediately
	return s
}

// NextUint advances the state and returns the next 32-bit value.
func (s *RandState) NextUint() uint32 {
	x := uint32(*s)
	x = (x ^ 61) ^ (x >> 16)
	x *= 9
	x ^= x >> 4
	x *= 0x27d4eb2d
	x ^= x >> 15
	*s = RandState(x)
	return x
}

// NextFloat01 returns the next value mapped to [0, 1).
func (s *RandState) NextFloat01() float64 {
	return float64(s.NextUint()) / 4294967296.0
}

// UnitVector returns a uniformly distributed direction on the unit sphere,
// built by inverse transform on z and an azimuthal angle.
func (s *RandState) UnitVector() Vec3 {
	z := 1.0 - 2.0*s.NextFloat01()
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * s.NextFloat01()
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// CosineDirection returns a cosine-weighted direction in the hemisphere
// around normal, used for Lambertian importance sampling.
func (s *RandState) CosineDirection(normal Vec3) Vec3 {
	a := 2.0 * math.Pi * s.NextFloat01()
	z := s.NextFloat01()
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	// Build an orthonormal basis around the normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// haltonPrimes is the fixed radix table for the Halton sequence. Dimensions
// beyond the table wrap around.
var haltonPrimes = [...]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

// Halton returns element index of the low-discrepancy radix-inverse sequence
// for the given dimension.
func Halton(index, dimension uint32) float64 {
	base := haltonPrimes[dimension%uint32(len(haltonPrimes))]
	f := 1.0
	r := 0.0
	for i := index; i > 0; i /= base {
		f /= float64(base)
		r += f * float64(i%base)
	}
	return r
}
