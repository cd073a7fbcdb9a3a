package rng

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext/prng"
)

// ErrUnknownEngine is returned for engine names that aren't registered.
var ErrUnknownEngine = errors.New("unknown random engine")

// Engine names the pseudo-random algorithm backing every stream of a Pool.
type Engine string

const (
	EngineXoshiro256StarStar Engine = "xoshiro256**"
	EngineXoshiro256PlusPlus Engine = "xoshiro256++"
	EngineMT19937            Engine = "mt19937"
	EngineMT19937_64         Engine = "mt19937-64"
	EnginePCG                Engine = "pcg"

	// DefaultEngine is used when no engine is configured.
	DefaultEngine = EngineXoshiro256StarStar
)

type sourceFunc func(seed uint64) rand.Source

var engineMap map[Engine]sourceFunc

func init() {
	engineMap = map[Engine]sourceFunc{
		EngineXoshiro256StarStar: func(seed uint64) rand.Source {
			return prng.NewXoshiro256starstar(seed)
		},
		EngineXoshiro256PlusPlus: func(seed uint64) rand.Source {
			return prng.NewXoshiro256plusplus(seed)
		},
		EngineMT19937: func(seed uint64) rand.Source {
			source := prng.NewMT19937()
			source.Seed(seed)
			return source
		},
		EngineMT19937_64: func(seed uint64) rand.Source {
			source := prng.NewMT19937_64()
			source.Seed(seed)
			return source
		},
		EnginePCG: func(seed uint64) rand.Source {
			return rand.NewSource(seed)
		},
	}
}

// Engines returns the registered engine names, sorted.
func Engines() []Engine {
	engines := make([]Engine, 0, len(engineMap))
	for eachKey := range engineMap {
		engines = append(engines, eachKey)
	}
	sort.Slice(engines, func(i, j int) bool {
		return engines[i] < engines[j]
	})
	return engines
}

// ParseEngine resolves a user supplied engine name. The empty string
// selects DefaultEngine.
func ParseEngine(name string) (Engine, error) {
	trimmed := Engine(strings.ToLower(strings.TrimSpace(name)))
	if trimmed == "" {
		return DefaultEngine, nil
	}
	_, exists := engineMap[trimmed]
	if !exists {
		return "", fmt.Errorf("%w: %s. Supported engines: %v", ErrUnknownEngine, name, Engines())
	}
	return trimmed, nil
}

func (e Engine) newSource(seed uint64) (rand.Source, error) {
	if e == "" {
		e = DefaultEngine
	}
	factory, exists := engineMap[e]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, e)
	}
	return factory(seed), nil
}
