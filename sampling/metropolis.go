// Package sampling draws samples from a one-dimensional, possibly
// unnormalized density on [a, b] with the Metropolis-Hastings independence
// sampler. Proposals are uniform over the whole interval.
//
// In ModeParallel every output index is a lane. Lanes run concurrently and
// share one ChainState: each lane reads it, decides acceptance against it,
// swaps in its new value and records the value found in the cell right after
// the swap. Reads within a lane are not snapshot consistent, and slot i may
// hold a value written by another lane. The trajectory is therefore an
// interleaving chosen by the scheduler, and it can differ between runs with
// the same seed unless the run is dispatched on a single worker. It is a
// parallel approximation of a chain, not a single serialized chain.
//
// ModeSequential runs the textbook chain on one worker instead.
package sampling

import (
	"log/slog"
	"time"
)

// /////////////////////////////////////////////////////////////////////////////
// kernel
// /////////////////////////////////////////////////////////////////////////////
type kernel[F Float] struct {
	target   Density[F]
	samples  []F
	a        F
	b        F
	state    *ChainState[F]
	pool     StreamPool
	uniform  uniformFunc[F]
	observer Observer
}

// lane performs one Metropolis-Hastings step for output index i.
func (k *kernel[F]) lane(i int) {
	stream := k.pool.Acquire()
	defer k.pool.Release(stream)

	u := k.uniform(stream, 0, 1)
	xPrime := k.uniform(stream, k.a, k.b)
	alpha := k.target(xPrime) / k.target(k.state.Load())
	accepted := u <= alpha
	xNew := xPrime
	if !accepted {
		// Rejection keeps whatever the cell holds now.
		xNew = k.state.Load()
	}
	k.state.Swap(xNew)
	k.samples[i] = k.state.Load()

	if k.observer != nil {
		k.observer.ProposalEvaluated(accepted)
	}
}

// chain advances a single chain over every output index on one stream.
func (k *kernel[F]) chain() {
	stream := k.pool.Acquire()
	defer k.pool.Release(stream)

	current := k.state.Load()
	for i := range k.samples {
		u := k.uniform(stream, 0, 1)
		xPrime := k.uniform(stream, k.a, k.b)
		alpha := k.target(xPrime) / k.target(current)
		accepted := u <= alpha
		if accepted {
			current = xPrime
		}
		k.state.Swap(current)
		k.samples[i] = current

		if k.observer != nil {
			k.observer.ProposalEvaluated(accepted)
		}
	}
}

// Metropolis fills samples with draws from target restricted to [a, b]. The
// length of samples is the number of draws. A nil params uses the zero
// Params and a nil log uses slog.Default().
//
// When b <= a nothing is dispatched, samples is left untouched and the
// returned error wraps ErrInvalidBounds. Zero or non-finite density values
// aren't guarded against; they show up as NaN or Inf in the ratio.
func Metropolis[F Float](target Density[F],
	samples []F,
	a F,
	b F,
	params *Params,
	log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	if params == nil {
		params = &Params{}
	}
	startTime := time.Now()
	complete := func(err error) error {
		if params.Observer != nil {
			params.Observer.RunCompleted(StatusOf(err), len(samples), time.Since(startTime))
		}
		return err
	}

	boundsErr := ValidateBounds(a, b)
	if boundsErr != nil {
		log.Error("Sample bounds must be in [a,b] with a<b",
			"a", a,
			"b", b)
		return complete(boundsErr)
	}
	if len(samples) == 0 {
		log.Debug("No samples requested")
		return complete(nil)
	}

	dispatcher := params.dispatcher()
	pool, seed, poolErr := params.pool(dispatcher.Workers())
	if poolErr != nil {
		log.Error("Failed to create random stream pool", "error", poolErr)
		return complete(poolErr)
	}
	k := &kernel[F]{
		target:   target,
		samples:  samples,
		a:        a,
		b:        b,
		state:    NewChainState(Bounds[F]{A: a, B: b}.Midpoint()),
		pool:     pool,
		uniform:  uniformFor[F](),
		observer: params.Observer,
	}
	log.Debug("Sampling",
		"samples", len(samples),
		"a", a,
		"b", b,
		"seed", seed,
		"mode", params.Mode.String(),
		"workers", dispatcher.Workers())

	if params.Mode == ModeSequential {
		k.chain()
	} else {
		dispatcher.Dispatch(len(samples), k.lane)
	}
	log.Debug("Sampling complete",
		"samples", len(samples),
		"elapsed", time.Since(startTime))
	return complete(nil)
}
