package sampling

import (
	"fmt"
	"strings"
	"time"

	"github.com/mweagle/gometropolis/rng"
)

// Mode selects how the chain is advanced.
type Mode int

const (
	// ModeParallel runs one lane per sample. Lanes share the chain state
	// through atomic Load/Swap and the resulting trajectory is an
	// interleaving chosen by the scheduler.
	ModeParallel Mode = iota
	// ModeSequential runs a single chain where every state depends on the
	// previous one.
	ModeSequential
)

func (m Mode) String() string {
	if m == ModeSequential {
		return "sequential"
	}
	return "parallel"
}

func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "parallel":
		return ModeParallel, nil
	case "sequential":
		return ModeSequential, nil
	default:
		return ModeParallel, fmt.Errorf("invalid sampling mode: %s. Must be one of: {parallel, sequential}", value)
	}
}

// StreamPool hands out random streams to lanes. Every Acquire is matched
// by exactly one Release.
type StreamPool interface {
	Acquire() rng.Stream
	Release(stream rng.Stream)
}

// Observer receives run events. Implementations must be safe for
// concurrent use since ProposalEvaluated is called from every lane.
type Observer interface {
	ProposalEvaluated(accepted bool)
	RunCompleted(status StatusCode, samples int, elapsed time.Duration)
}

// Params configures a sampling run. The zero value is usable: parallel mode,
// GOMAXPROCS workers, the default engine and the build's seed mode.
type Params struct {
	// Seed of the stream pool. Zero means unseeded, see SeedMode.
	Seed     uint64
	SeedMode SeedMode
	Engine   rng.Engine
	// Workers bounds the number of concurrent lanes in ModeParallel. Values
	// below one select runtime.GOMAXPROCS(0).
	Workers int
	Mode    Mode

	// Dispatcher overrides the dispatcher built from Workers.
	Dispatcher Dispatcher
	// Pool overrides the pool built from Seed and Engine.
	Pool     StreamPool
	Observer Observer
}

func (p *Params) dispatcher() Dispatcher {
	if p.Mode == ModeSequential {
		return SequentialDispatcher{}
	}
	if p.Dispatcher != nil {
		return p.Dispatcher
	}
	return NewParallelDispatcher(p.Workers)
}

func (p *Params) pool(size int) (StreamPool, uint64, error) {
	if p.Pool != nil {
		return p.Pool, p.Seed, nil
	}
	seed, seedErr := resolveSeed(p.Seed, p.SeedMode)
	if seedErr != nil {
		return nil, 0, seedErr
	}
	pool, poolErr := rng.NewPool(seed, size, p.Engine)
	if poolErr != nil {
		return nil, 0, poolErr
	}
	return pool, seed, nil
}
