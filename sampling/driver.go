package sampling

import (
	"log/slog"
)

// FixedSamples is the length of the buffer returned by MetropolisFixed.
const FixedSamples = 10000

// MetropolisFixed samples into a newly allocated array of FixedSamples
// values. The array is returned even when sampling fails, in which case it
// is zero-filled.
func MetropolisFixed[F Float](target Density[F],
	a F,
	b F,
	params *Params,
	log *slog.Logger) ([FixedSamples]F, error) {
	var samples [FixedSamples]F
	err := Metropolis(target, samples[:], a, b, params, log)
	return samples, err
}

// MetropolisN samples into a newly allocated slice of n values. Negative n
// is treated as zero. The slice is returned even when sampling fails.
func MetropolisN[F Float](target Density[F],
	a F,
	b F,
	n int,
	params *Params,
	log *slog.Logger) ([]F, error) {
	samples := make([]F, max(n, 0))
	err := Metropolis(target, samples, a, b, params, log)
	return samples, err
}
