//go:build !release

package sampling

// BuildSeedMode is the seed mode of unseeded runs that don't pick one.
// Build with -tags release to switch to SeedEntropy.
const BuildSeedMode = SeedDeterministic
