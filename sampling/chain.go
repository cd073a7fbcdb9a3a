package sampling

import (
	"math"
	"sync/atomic"
)

// /////////////////////////////////////////////////////////////////////////////
// ChainState
//
// The single cell holding the current value of the chain. Every lane of a
// run reads and writes it, so it only exposes an atomic Load and an atomic
// Swap. Values are stored as float64 bits; float32 values round trip
// exactly.
//
// /////////////////////////////////////////////////////////////////////////////
type ChainState[F Float] struct {
	bits atomic.Uint64
}

func NewChainState[F Float](initial F) *ChainState[F] {
	state := &ChainState[F]{}
	state.bits.Store(math.Float64bits(float64(initial)))
	return state
}

func (cs *ChainState[F]) Load() F {
	return F(math.Float64frombits(cs.bits.Load()))
}

// Swap stores value and returns the value it replaced.
func (cs *ChainState[F]) Swap(value F) F {
	prior := cs.bits.Swap(math.Float64bits(float64(value)))
	return F(math.Float64frombits(prior))
}
