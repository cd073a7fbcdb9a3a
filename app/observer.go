package app

import (
	"sync/atomic"
	"time"

	"github.com/mweagle/gometropolis/sampling"
)

// acceptanceCounter tallies proposal outcomes across every lane of a run.
type acceptanceCounter struct {
	proposals atomic.Int64
	accepted  atomic.Int64
	elapsed   atomic.Int64
}

func (ac *acceptanceCounter) ProposalEvaluated(accepted bool) {
	ac.proposals.Add(1)
	if accepted {
		ac.accepted.Add(1)
	}
}

func (ac *acceptanceCounter) RunCompleted(_ sampling.StatusCode, _ int, elapsed time.Duration) {
	ac.elapsed.Store(int64(elapsed))
}

// Rate is the accepted fraction of evaluated proposals, zero when nothing
// was evaluated.
func (ac *acceptanceCounter) Rate() float64 {
	proposals := ac.proposals.Load()
	if proposals == 0 {
		return 0
	}
	return float64(ac.accepted.Load()) / float64(proposals)
}

func (ac *acceptanceCounter) Elapsed() time.Duration {
	return time.Duration(ac.elapsed.Load())
}

// multiObserver fans events out to every non-nil observer.
type multiObserver []sampling.Observer

func newMultiObserver(observers ...sampling.Observer) multiObserver {
	fanout := make(multiObserver, 0, len(observers))
	for _, eachObserver := range observers {
		if eachObserver != nil {
			fanout = append(fanout, eachObserver)
		}
	}
	return fanout
}

func (mo multiObserver) ProposalEvaluated(accepted bool) {
	for _, eachObserver := range mo {
		eachObserver.ProposalEvaluated(accepted)
	}
}

func (mo multiObserver) RunCompleted(status sampling.StatusCode, samples int, elapsed time.Duration) {
	for _, eachObserver := range mo {
		eachObserver.RunCompleted(status, samples, elapsed)
	}
}
