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
	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/blocking"
	"github.com/arborix/vkernel/contrib/parallel"
)

// MinParallelOps is the element-product floor below which MultiplyParallel
// and MultiplyParallelFineGrained fall back to the sequential Multiply instead
// of paying worker-dispatch overhead, matching the teacher's
// matmul_parallel.go MinParallelOps threshold.
const MinParallelOps = 64 * 64 * 64

// RowsPerStrip is the row-strip height MultiplyParallel hands each worker,
// carried over from the teacher's RowsPerStrip tuning constant.
const RowsPerStrip = 64

// MultiplyParallel is Multiply's row-strip parallel form: the output rows
// are partitioned into RowsPerStrip-high strips and each strip is computed
// independently against the same transposed-B scratch, grounded on
// contrib/matmul/matmul_parallel.go's ParallelMatMul.
func MultiplyParallel[T vkernel.Scalar, S vkernel.Tag](pool *parallel.Pool, dst, a, b vkernel.View[T]) error {
	if err := requireMatMulShapes("MultiplyParallel", a, b); err != nil {
		return err
	}
	if err := requireOutputShape("MultiplyParallel", dst, a.Rows(), b.Cols()); err != nil {
		return err
	}

	m, k, p := a.Rows(), a.Cols(), b.Cols()
	if m == 0 || k == 0 || p == 0 {
		return nil
	}
	if m*k*p < MinParallelOps {
		return Multiply[T, S](dst, a, b)
	}

	bt := vkernel.NewView[T](p, k)
	if err := Transpose[T, S](bt, b); err != nil {
		return err
	}

	lanes := vkernel.LaneCount[T, S]()
	kern := blocking.Multiply
	kr := max(kern.Rr, 1)
	kc := max(kern.Rc*lanes, 1)

	blk := blocking.Derive[T, S](kern, blocking.DefaultCacheBudget())
	rowPanel := panelSize(blk.B2, m)
	colPanel := panelSize(blk.B3, p)
	kPanel := panelSize(blk.B1, k)

	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip
	return pool.ParallelFor(numStrips, 1, func(start, end int) error {
		for strip := start; strip < end; strip++ {
			rowStart := strip * RowsPerStrip
			rowEnd := min(rowStart+RowsPerStrip, m)
			multiplyCore[T](dst, a, bt, rowStart, rowEnd, kr, kc, rowPanel, colPanel, kPanel)
		}
		return nil
	}, nil)
}

// MultiplyParallelFineGrained is MultiplyParallel's one-row-strip form,
// for cases where M is too small for RowsPerStrip-wide strips to expose
// any parallelism (e.g. M=11, N=1024, K=1024 in the teacher's benchmark
// note) — grounded on ParallelMatMulFineGrained's atomic work-stealing.
func MultiplyParallelFineGrained[T vkernel.Scalar, S vkernel.Tag](pool *parallel.Pool, dst, a, b vkernel.View[T]) error {
	if err := requireMatMulShapes("MultiplyParallelFineGrained", a, b); err != nil {
		return err
	}
	if err := requireOutputShape("MultiplyParallelFineGrained", dst, a.Rows(), b.Cols()); err != nil {
		return err
	}

	m, k, p := a.Rows(), a.Cols(), b.Cols()
	if m == 0 || k == 0 || p == 0 {
		return nil
	}
	if m*k*p < MinParallelOps {
		return Multiply[T, S](dst, a, b)
	}

	bt := vkernel.NewView[T](p, k)
	if err := Transpose[T, S](bt, b); err != nil {
		return err
	}

	lanes := vkernel.LaneCount[T, S]()
	kern := blocking.Multiply
	kr := max(kern.Rr, 1)
	kc := max(kern.Rc*lanes, 1)

	blk := blocking.Derive[T, S](kern, blocking.DefaultCacheBudget())
	rowPanel := panelSize(blk.B2, m)
	colPanel := panelSize(blk.B3, p)
	kPanel := panelSize(blk.B1, k)

	return pool.ParallelForAtomic(m, 1, func(start, end int) error {
		multiplyCore[T](dst, a, bt, start, end, kr, kc, rowPanel, colPanel, kPanel)
		return nil
	}, nil)
}
