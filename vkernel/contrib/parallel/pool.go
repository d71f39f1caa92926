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

// Package parallel implements §4.5's parallel driver: a persistent worker
// pool plus a step-strided ParallelFor with edge fallback, a captured-error
// contract, and an optional progress callback. Grounded directly on
// hwy/contrib/workerpool/workerpool.go's Pool/ParallelFor/ParallelForAtomic.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool, reused across many operations exactly
// as the teacher's workerpool.Pool is: spawned once, workers block on a
// channel of work items until Close.
type Pool struct {
	numWorkers int
	workC      chan func()
	closeOnce  sync.Once
	closed     atomic.Bool
}

// New creates a pool with numWorkers goroutines. numWorkers <= 0 selects
// runtime.GOMAXPROCS(0), the default worker count named in spec.md §6's
// configuration table (REAL_CORES).
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan func(), numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for fn := range p.workC {
		fn()
	}
}

// NumWorkers returns the pool's worker count.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts the pool down. Safe to call more than once.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool { return p.closed.Load() }

// dispatch submits fn to a worker, or runs it inline if the pool is
// closed — the same fallback the teacher's ParallelFor family applies.
func (p *Pool) dispatch(fn func(), wg *sync.WaitGroup) {
	if p.closed.Load() {
		fn()
		wg.Done()
		return
	}
	p.workC <- func() {
		fn()
		wg.Done()
	}
}
