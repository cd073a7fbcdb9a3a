package sampling

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Dispatcher runs body once for every index in [0, n) and returns when all
// of them have completed. Workers is the maximum number of bodies that may
// run at the same time.
type Dispatcher interface {
	Dispatch(n int, body func(i int))
	Workers() int
}

// SequentialDispatcher runs every index in order on the calling goroutine.
type SequentialDispatcher struct{}

func (SequentialDispatcher) Dispatch(n int, body func(i int)) {
	for i := 0; i < n; i++ {
		body(i)
	}
}

func (SequentialDispatcher) Workers() int {
	return 1
}

// /////////////////////////////////////////////////////////////////////////////
// ParallelDispatcher
//
// Fans the index range out over a fixed number of goroutines. Each worker
// claims the next unclaimed index from a shared cursor, so there is no
// ordering among indices.
//
// /////////////////////////////////////////////////////////////////////////////
type ParallelDispatcher struct {
	workers int
}

// NewParallelDispatcher creates a dispatcher with the given number of
// workers. Values below one select runtime.GOMAXPROCS(0).
func NewParallelDispatcher(workers int) *ParallelDispatcher {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &ParallelDispatcher{
		workers: workers,
	}
}

func (pd *ParallelDispatcher) Workers() int {
	return pd.workers
}

func (pd *ParallelDispatcher) Dispatch(n int, body func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(pd.workers, n)
	var cursor atomic.Int64
	var group errgroup.Group
	group.SetLimit(workers)
	for w := 0; w != workers; w++ {
		group.Go(func() error {
			for {
				i := cursor.Add(1) - 1
				if i >= int64(n) {
					return nil
				}
				body(int(i))
			}
		})
	}
	_ = group.Wait()
}
