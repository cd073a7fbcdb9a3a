//go:build release

package sampling

// BuildSeedMode is the seed mode of unseeded runs that don't pick one.
const BuildSeedMode = SeedEntropy
