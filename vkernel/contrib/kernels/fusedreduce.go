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
)

// FusedReduce computes fold_R over (i,j) of U(a[i,j], b[i,j]), seeded by
// seed, without materializing U's result matrix, per spec.md §4.12.
// Grounded on contrib/dot/batch.go's DotBatch (union-then-reduce in one
// pass) and contrib/matvec/matvec_base.go's BaseMatVec row-dot loop: the
// U=mul, R=add fast path below is that same row-dot loop generalized to
// an arbitrary (U, R) pair.
func FusedReduce[T vkernel.Scalar, U BinaryOp[T], R ReduceOp[T], S vkernel.Tag](a, b vkernel.View[T], seed T) (T, error) {
	var zero T
	if err := requireSameShape("FusedReduce", a, b); err != nil {
		return zero, err
	}
	var u U
	var r R
	lanes := vkernel.LaneCount[T, S]()
	useFMA := isMulAddFastPath[T](u, r)

	acc := seed
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.FusedReduce, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				aRow, bRow := a.Row(i), b.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					va := vkernel.Load[T, S](aRow[j : j+lanes])
					vb := vkernel.Load[T, S](bRow[j : j+lanes])
					if useFMA {
						// fmadd(a, b, acc) per lane, the dot-product pattern:
						// reduce the tile by accumulating directly rather than
						// materializing U's result and reducing it afterward.
						acc = fmaDotAccumulate(acc, va, vb)
					} else {
						acc = r.CombineVec(acc, u.ApplyVec(va, vb))
					}
				}
				for ; j < jEnd; j++ {
					acc = r.Combine(acc, u.ApplyScalar(aRow[j], bRow[j]))
				}
			}
		}
	}
	return acc, nil
}

// isMulAddFastPath reports whether (U, R) = (mul, add), the one pair
// spec.md §4.12 names as fusing to a per-lane fmadd.
func isMulAddFastPath[T vkernel.Scalar](u BinaryOp[T], r ReduceOp[T]) bool {
	var zero T
	switch any(zero).(type) {
	case complex64, complex128:
		return false
	}
	_, isMul := u.(MulOp[T])
	_, isAdd := r.(AddReduceOp[T])
	return isMul && isAdd
}

// fmaDotAccumulate folds one register's worth of a*b into acc via
// math.FMA per lane, then combines the running scalar via
// HorizontalAdd-equivalent left fold — matching the teacher's
// hwy.Mul-then-hwy.ReduceSum row-dot loop but fusing the multiply into
// the running sum.
func fmaDotAccumulate[T vkernel.Scalar](acc T, a, b vkernel.Vec[T]) T {
	ad, bd := a.Data(), b.Data()
	n := min(len(ad), len(bd))
	for i := 0; i < n; i++ {
		acc = fmaScalar(fmaAdd, ad[i], bd[i], acc)
	}
	return acc
}
