// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parallel

import (
	"sync"
	"sync/atomic"

	"github.com/arborix/vkernel"
)

// chunk is one stepped slice of the outer range, [Start, End) with
// End-Start <= step.
type chunk struct {
	start, end int
}

func chunks(n, step int) []chunk {
	out := make([]chunk, 0, (n+step-1)/step)
	for i := 0; i < n; i += step {
		end := i + step
		if end > n {
			end = n
		}
		out = append(out, chunk{start: i, end: end})
	}
	return out
}

// ParallelFor runs fn once per stepped chunk of [0, n), statically
// partitioning the chunk list across the pool's workers, per spec.md
// §4.5. fn may write the shared matrix only within [start, end) of the
// outer dimension — different chunks must not overlap, a guarantee the
// family kernels provide, not this driver.
//
// step must be >= 1. If any invocation of fn returns a non-nil error,
// every already-dispatched chunk still runs to completion; the first
// captured error (by completion order, which is implementation-defined
// for >1 worker) is returned after the join. progress, if non-nil, is
// invoked once per completed chunk with the running completed count;
// invocations may interleave across workers and are not ordered.
func (p *Pool) ParallelFor(n, step int, fn func(start, end int) error, progress func(completed int)) error {
	if step < 1 {
		return &vkernel.Error{Op: "ParallelFor", Kind: vkernel.InvalidArgument, Matrix: -1, Detail: "step < 1"}
	}
	if n <= 0 {
		return nil
	}

	cs := chunks(n, step)
	var completed atomic.Int64
	report := func() {
		if progress != nil {
			progress(int(completed.Add(1)))
		}
	}

	workers := min(p.numWorkers, len(cs))
	if workers <= 1 || p.closed.Load() {
		var firstErr error
		for _, c := range cs {
			if err := fn(c.start, c.end); err != nil && firstErr == nil {
				firstErr = err
			}
			report()
		}
		return firstErr
	}

	chunkSize := (len(cs) + workers - 1) / workers
	var wg sync.WaitGroup
	wg.Add(workers)

	var mu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := range workers {
		start := w * chunkSize
		end := min(start+chunkSize, len(cs))
		if start >= len(cs) {
			wg.Done()
			continue
		}
		myChunks := cs[start:end]
		p.dispatch(func() {
			for _, c := range myChunks {
				recordErr(fn(c.start, c.end))
				report()
			}
		}, &wg)
	}

	wg.Wait()
	return firstErr
}

// ParallelForAtomic is ParallelFor's work-stealing variant, grounded on
// workerpool.Pool.ParallelForAtomic: better load balance when per-chunk
// cost varies, at the price of one atomic increment per chunk grabbed.
func (p *Pool) ParallelForAtomic(n, step int, fn func(start, end int) error, progress func(completed int)) error {
	if step < 1 {
		return &vkernel.Error{Op: "ParallelForAtomic", Kind: vkernel.InvalidArgument, Matrix: -1, Detail: "step < 1"}
	}
	if n <= 0 {
		return nil
	}

	cs := chunks(n, step)
	var completed atomic.Int64
	report := func() {
		if progress != nil {
			progress(int(completed.Add(1)))
		}
	}

	workers := min(p.numWorkers, len(cs))
	if workers <= 1 || p.closed.Load() {
		var firstErr error
		for _, c := range cs {
			if err := fn(c.start, c.end); err != nil && firstErr == nil {
				firstErr = err
			}
			report()
		}
		return firstErr
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	var mu sync.Mutex
	var firstErr error

	for range workers {
		p.dispatch(func() {
			for {
				idx := int(nextIdx.Add(1)) - 1
				if idx >= len(cs) {
					return
				}
				if err := fn(cs[idx].start, cs[idx].end); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				report()
			}
		}, &wg)
	}

	wg.Wait()
	return firstErr
}
