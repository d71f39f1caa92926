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

// UniteMatrix computes dst[i,j] = O(a[i,j], b[i,j]) for every element,
// per spec.md §4.9's matrix variant. Grounded on hwy/ops_base.go's
// Add/Sub/Mul/Div dispatched through a load-compute-store tiled loop.
func UniteMatrix[T vkernel.Scalar, O BinaryOp[T], S vkernel.Tag](dst, a, b vkernel.View[T]) error {
	if err := requireSameShape("UniteMatrix", a, b); err != nil {
		return err
	}
	if err := requireOutputShape("UniteMatrix", dst, a.Rows(), a.Cols()); err != nil {
		return err
	}
	var op O
	lanes := vkernel.LaneCount[T, S]()
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.Unite, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				aRow, bRow, dRow := a.Row(i), b.Row(i), dst.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					va := vkernel.Load[T, S](aRow[j : j+lanes])
					vb := vkernel.Load[T, S](bRow[j : j+lanes])
					vkernel.Store[T, S](op.ApplyVec(va, vb), dRow[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					dRow[j] = op.ApplyScalar(aRow[j], bRow[j])
				}
			}
		}
	}
	return nil
}

// UniteScalar computes dst[i,j] = O(a[i,j], b) for a fixed scalar b, per
// spec.md §4.9's scalar variant.
func UniteScalar[T vkernel.Scalar, O BinaryOp[T], S vkernel.Tag](dst, a vkernel.View[T], b T) error {
	if err := checkDims("UniteScalar", a); err != nil {
		return err
	}
	if err := requireOutputShape("UniteScalar", dst, a.Rows(), a.Cols()); err != nil {
		return err
	}
	var op O
	lanes := vkernel.LaneCount[T, S]()
	bVec := vkernel.Splat[T, S](b)
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.Unite, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				aRow, dRow := a.Row(i), dst.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					va := vkernel.Load[T, S](aRow[j : j+lanes])
					vkernel.Store[T, S](op.ApplyVec(va, bVec), dRow[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					dRow[j] = op.ApplyScalar(aRow[j], b)
				}
			}
		}
	}
	return nil
}

func requireSameShape[T vkernel.Scalar](op string, a, b vkernel.View[T]) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 1, Detail: "shape mismatch"}
	}
	return checkDims(op, a)
}
