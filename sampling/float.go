package sampling

import (
	"unsafe"

	"github.com/mweagle/gometropolis/rng"
)

// Float is the floating point type of a sampling run. A run uses exactly
// one precision for its bounds, its chain state, its samples and its draws.
type Float interface {
	~float32 | ~float64
}

// Density is the target distribution. It must be pure and non-negative and
// need not integrate to one; only ratios of its values are used.
type Density[F Float] func(x F) F

type uniformFunc[F Float] func(stream rng.Stream, low, high F) F

// uniformFor returns the stream draw matching the width of F. The choice is
// fixed per instantiation, so single precision runs only ever call Float32
// and double precision runs only ever call Float64.
func uniformFor[F Float]() uniformFunc[F] {
	var zero F
	if unsafe.Sizeof(zero) == unsafe.Sizeof(float32(0)) {
		return func(stream rng.Stream, low, high F) F {
			return F(stream.Float32(float32(low), float32(high)))
		}
	}
	return func(stream rng.Stream, low, high F) F {
		return F(stream.Float64(float64(low), float64(high)))
	}
}
