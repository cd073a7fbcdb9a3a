package sampling

import (
	"fmt"
	"strings"

	"github.com/mweagle/gometropolis/rng"
)

// DeterministicSeed replaces the unseeded sentinel under SeedDeterministic.
const DeterministicSeed uint64 = 2025

// SeedMode decides how an unseeded run (Params.Seed == 0) picks its seed.
type SeedMode int

const (
	// SeedModeDefault defers to BuildSeedMode.
	SeedModeDefault SeedMode = iota
	// SeedDeterministic uses DeterministicSeed, so unseeded runs repeat.
	SeedDeterministic
	// SeedEntropy reads a seed from the operating system.
	SeedEntropy
)

func (sm SeedMode) String() string {
	switch sm {
	case SeedDeterministic:
		return "deterministic"
	case SeedEntropy:
		return "entropy"
	default:
		return "default"
	}
}

// ParseSeedMode accepts "deterministic", "entropy" or "" (the build default).
func ParseSeedMode(value string) (SeedMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return SeedModeDefault, nil
	case "deterministic", "debug":
		return SeedDeterministic, nil
	case "entropy", "release":
		return SeedEntropy, nil
	default:
		return SeedModeDefault, fmt.Errorf("invalid seed mode: %s. Must be one of: {deterministic, entropy}", value)
	}
}

// resolveSeed returns the seed the pool is built from. A non-zero seed is
// always used unchanged.
func resolveSeed(seed uint64, mode SeedMode) (uint64, error) {
	if seed != 0 {
		return seed, nil
	}
	if mode == SeedModeDefault {
		mode = BuildSeedMode
	}
	if mode == SeedEntropy {
		return rng.EntropySeed()
	}
	return DeterministicSeed, nil
}
