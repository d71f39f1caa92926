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

// Package kernels implements the five family kernels of spec.md §4.7-§4.12
// plus multiply (§4.13): broadcast, transpose, unite, reduce, fused_union,
// fused_reduce, multiply. Each dispatches on the caller's ISA tag S purely
// at compile time (monomorphized per instantiation, no runtime branch on
// CPU features), cache-blocks over the sizes blocking.Derive computes, and
// falls back to a scalar double loop on edge rows/cols.
package kernels

import (
	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/blocking"
)

// Broadcast assigns dst[i,j] = value for every element, per spec.md §4.7.
// Cache-blocked over (B2, B3); the innermost loop splats value once per
// tile and stores a full register per iteration, with a scalar tail for
// rows/cols that don't fill a register.
func Broadcast[T vkernel.Scalar, S vkernel.Tag](dst vkernel.View[T], value T) error {
	if err := checkDims("Broadcast", dst); err != nil {
		return err
	}
	lanes := vkernel.LaneCount[T, S]()
	splat := vkernel.Splat[T, S](value)
	m, n := dst.Rows(), dst.Cols()

	blk := blocking.Derive[T, S](blocking.Broadcast, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				row := dst.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					vkernel.Store[T, S](splat, row[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					row[j] = value
				}
			}
		}
	}
	return nil
}

// Zeros fills dst with the zero value of T.
func Zeros[T vkernel.Scalar, S vkernel.Tag](dst vkernel.View[T]) error {
	var zero T
	return Broadcast[T, S](dst, zero)
}

// Ones fills dst with the multiplicative identity of T.
func Ones[T vkernel.Scalar, S vkernel.Tag](dst vkernel.View[T]) error {
	return Broadcast[T, S](dst, T(1))
}

// Identity zeros dst, then sets the main diagonal to 1 for i < min(M, N),
// per spec.md §4.7.
func Identity[T vkernel.Scalar, S vkernel.Tag](dst vkernel.View[T]) error {
	if err := Zeros[T, S](dst); err != nil {
		return err
	}
	SetIdentity(dst)
	return nil
}

// SetIdentity writes 1 on the main diagonal up to min(M, N) without
// touching off-diagonal elements, per spec.md §4.14. Unlike the other
// entry points it never fails on shape — any rectangle is accepted, the
// diagonal is simply as long as min(M, N).
func SetIdentity[T vkernel.Scalar](dst vkernel.View[T]) {
	n := min(dst.Rows(), dst.Cols())
	for i := 0; i < n; i++ {
		dst.Set(i, i, T(1))
	}
}

func checkDims[T vkernel.Scalar](op string, v vkernel.View[T]) error {
	if v.Rows() == 0 || v.Cols() == 0 {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 0, Detail: "zero dimension"}
	}
	return nil
}
