package rng

import (
	"math"

	"golang.org/x/exp/rand"
)

// Stream is a single random number generator owned by one lane at a time.
// Both draws return values uniformly distributed in [low, high).
type Stream interface {
	Float32(low, high float32) float32
	Float64(low, high float64) float64
}

type stream struct {
	index int
	rnd   *rand.Rand
}

// Float32 and Float64 scale a unit draw onto [low, high). The scaled value
// can round up to high, in which case the largest value below high is
// returned instead.
func (s *stream) Float32(low, high float32) float32 {
	value := low + s.rnd.Float32()*(high-low)
	if value >= high {
		return math.Nextafter32(high, low)
	}
	return value
}

func (s *stream) Float64(low, high float64) float64 {
	value := low + s.rnd.Float64()*(high-low)
	if value >= high {
		return math.Nextafter(high, low)
	}
	return value
}

// /////////////////////////////////////////////////////////////////////////////
// Pool
//
// A fixed set of independently seeded streams. Acquire hands out a stream
// that no other caller holds until it is passed back to Release. When every
// stream is checked out Acquire blocks.
//
// /////////////////////////////////////////////////////////////////////////////
type Pool struct {
	seed    uint64
	engine  Engine
	streams []*stream
	free    chan *stream
}

// NewPool creates size streams of the given engine. Stream seeds are drawn
// in order from a PCG source seeded with seed, so the same (seed, size,
// engine) triple always produces the same streams.
func NewPool(seed uint64, size int, engine Engine) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	if engine == "" {
		engine = DefaultEngine
	}
	pool := &Pool{
		seed:    seed,
		engine:  engine,
		streams: make([]*stream, size),
		free:    make(chan *stream, size),
	}
	seedSource := rand.NewSource(seed)
	for i := 0; i != size; i++ {
		source, sourceErr := engine.newSource(seedSource.Uint64())
		if sourceErr != nil {
			return nil, sourceErr
		}
		pool.streams[i] = &stream{
			index: i,
			rnd:   rand.New(source),
		}
		pool.free <- pool.streams[i]
	}
	return pool, nil
}

// Acquire returns a stream for exclusive use by the caller.
func (p *Pool) Acquire() Stream {
	return <-p.free
}

// Release returns a stream obtained from Acquire. It must be called exactly
// once per Acquire. Streams that don't belong to this pool are ignored.
func (p *Pool) Release(s Stream) {
	owned, ownedOk := s.(*stream)
	if !ownedOk || owned.index >= len(p.streams) || p.streams[owned.index] != owned {
		return
	}
	p.free <- owned
}

// Size is the number of streams in the pool.
func (p *Pool) Size() int {
	return len(p.streams)
}

// Available is the number of streams not currently acquired.
func (p *Pool) Available() int {
	return len(p.free)
}

func (p *Pool) Seed() uint64 {
	return p.seed
}

func (p *Pool) Engine() Engine {
	return p.engine
}
