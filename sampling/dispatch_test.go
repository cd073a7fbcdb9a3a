package sampling

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialDispatcherOrder(t *testing.T) {
	visited := make([]int, 0, 10)
	SequentialDispatcher{}.Dispatch(10, func(i int) {
		visited = append(visited, i)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, visited)
	assert.Equal(t, 1, SequentialDispatcher{}.Workers())
}

func TestParallelDispatcherVisitsEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8, 64} {
		const n = 10007
		counts := make([]atomic.Int32, n)
		dispatcher := NewParallelDispatcher(workers)
		dispatcher.Dispatch(n, func(i int) {
			counts[i].Add(1)
		})
		for i := range counts {
			if counts[i].Load() != 1 {
				t.Fatalf("workers=%d index %d visited %d times", workers, i, counts[i].Load())
			}
		}
	}
}

func TestParallelDispatcherEmptyRange(t *testing.T) {
	var calls atomic.Int32
	NewParallelDispatcher(4).Dispatch(0, func(int) {
		calls.Add(1)
	})
	NewParallelDispatcher(4).Dispatch(-3, func(int) {
		calls.Add(1)
	})
	assert.Zero(t, calls.Load())
}

func TestParallelDispatcherDefaultWorkers(t *testing.T) {
	assert.Equal(t, runtime.GOMAXPROCS(0), NewParallelDispatcher(0).Workers())
	assert.Equal(t, 5, NewParallelDispatcher(5).Workers())
}

func TestParallelDispatcherBoundsConcurrency(t *testing.T) {
	const workers = 3
	var active atomic.Int32
	var peak atomic.Int32
	NewParallelDispatcher(workers).Dispatch(2000, func(int) {
		current := active.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		runtime.Gosched()
		active.Add(-1)
	})
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}
