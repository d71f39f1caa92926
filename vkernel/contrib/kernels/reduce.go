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

package kernels

import (
	"sync"

	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/blocking"
	"github.com/arborix/vkernel/contrib/parallel"
)

// Reduce folds every element of a with O, seeded by seed, per spec.md
// §4.10. O is restricted to {AddReduceOp, MulReduceOp} at the type
// level (ReduceOp has no other implementers in this package) since only
// add/mul are associative enough for the parallel variant below to be
// safe.
//
// Reduction order is unspecified beyond "row-major within a (B2, B3)
// cache panel, register tile then scalar tail"; floating-point results
// may differ in the last few ULPs from a naive left-fold. Callers
// comparing against a reference value should use a tolerance, not exact
// equality (spec.md §8, property 4).
func Reduce[T vkernel.Scalar, O ReduceOp[T], S vkernel.Tag](a vkernel.View[T], seed T) (T, error) {
	var zero T
	if err := checkDims("Reduce", a); err != nil {
		return zero, err
	}
	var op O
	lanes := vkernel.LaneCount[T, S]()
	acc := seed
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.Reduce, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				row := a.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					v := vkernel.Load[T, S](row[j : j+lanes])
					acc = op.CombineVec(acc, v)
				}
				for ; j < jEnd; j++ {
					acc = op.Combine(acc, row[j])
				}
			}
		}
	}
	return acc, nil
}

// ReduceParallel is Reduce's multi-worker form: each worker accumulates
// a partial over its row range seeded at the reducer's identity element
// (0 for add, 1 for mul), and the partials are combined with O on the
// caller's goroutine after the join — the per-thread-partial,
// join-then-combine shape spec.md §4.10 requires, grounded on
// contrib/workerpool's ParallelFor plus a partials-slice-then-reduce
// pattern.
func ReduceParallel[T vkernel.Scalar, O ReduceOp[T], S vkernel.Tag](pool *parallel.Pool, a vkernel.View[T], seed T) (T, error) {
	var zero T
	if err := checkDims("ReduceParallel", a); err != nil {
		return zero, err
	}
	var op O
	m := a.Rows()
	identity := reduceIdentity[T, O]()

	var mu sync.Mutex
	partials := make([]T, 0, pool.NumWorkers())

	// One contiguous row range per worker, so each worker folds one partial.
	step := (m + pool.NumWorkers() - 1) / pool.NumWorkers()
	err := pool.ParallelFor(m, step, func(start, end int) error {
		local := identity
		for i := start; i < end; i++ {
			for _, x := range a.Row(i) {
				local = op.Combine(local, x)
			}
		}
		mu.Lock()
		partials = append(partials, local)
		mu.Unlock()
		return nil
	}, nil)
	if err != nil {
		return zero, err
	}

	acc := seed
	for _, v := range partials {
		acc = op.Combine(acc, v)
	}
	return acc, nil
}

// reduceIdentity returns the seed_left_fold identity for O: 0 for add,
// 1 for mul, per spec.md §4.10.
func reduceIdentity[T vkernel.Scalar, O ReduceOp[T]]() T {
	var op any = *new(O)
	if _, isMul := op.(MulReduceOp[T]); !isMul {
		var zero T
		return zero
	}
	return T(1)
}
