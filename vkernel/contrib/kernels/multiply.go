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

// requireMatMulShapes checks that a's column count matches b's row count,
// the one shape constraint Multiply imposes on its two input operands.
func requireMatMulShapes[T vkernel.Scalar](op string, a, b vkernel.View[T]) error {
	if a.Cols() != b.Rows() {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 1, Detail: "inner dimension mismatch"}
	}
	return nil
}

// Multiply computes dst[i,j] += Σ_k a[i,k]·b[k,j] for a M×K, b K×P, dst
// M×P, per spec.md §4.13. dst is not zeroed by this call — callers zero
// it themselves (typically via Zeros), since the kernel accumulates.
//
// Algorithm, grounded directly on contrib/matmul/block_kernel.go's
// BaseBlockMulAdd/BaseBlockMulAdd2 (row-at-a-time accumulation against a
// pre-transposed operand) and contrib/matmul/transpose_base.go for the
// scratch transpose:
//  1. Build a scratch b' = transpose(b), shape P×K, so the inner loop
//     reads contiguous lanes of both a and b'.
//  2. Drive the register-tile micro-kernel over full (Kr, Kc) tiles.
//  3. Handle M/P/K residual strips with a scalar triple loop against b',
//     keeping the inner access unit-stride.
func Multiply[T vkernel.Scalar, S vkernel.Tag](dst, a, b vkernel.View[T]) error {
	if err := requireMatMulShapes("Multiply", a, b); err != nil {
		return err
	}
	if err := requireOutputShape("Multiply", dst, a.Rows(), b.Cols()); err != nil {
		return err
	}

	m, k, p := a.Rows(), a.Cols(), b.Cols()
	if m == 0 || k == 0 || p == 0 {
		return nil
	}

	bt := vkernel.NewView[T](p, k)
	if err := Transpose[T, S](bt, b); err != nil {
		return err
	}

	lanes := vkernel.LaneCount[T, S]()
	kern := blocking.Multiply
	kr := kern.Rr
	kc := kern.Rc * lanes
	if kr < 1 {
		kr = 1
	}
	if kc < 1 {
		kc = 1
	}

	blk := blocking.Derive[T, S](kern, blocking.DefaultCacheBudget())
	rowPanel := panelSize(blk.B2, m)
	colPanel := panelSize(blk.B3, p)
	kPanel := panelSize(blk.B1, k)

	multiplyCore[T](dst, a, bt, 0, m, kr, kc, rowPanel, colPanel, kPanel)
	return nil
}

// multiplyCore runs the blocked B-transpose GEMM over outer row range
// [rowStart, rowEnd) of dst/a, shared by both the sequential and
// parallel entry points so row-strip partitioning only changes which
// range each call covers. Within that range it drives the three cache
// panel loops blocking.Derive sizes — N-panel (colPanel, against L3),
// K-panel (kPanel, against L1), M-panel (rowPanel, against L2), in that
// nesting order — around the register-tile micro-kernel, the GEMM loop
// structure spec.md §4.4/§4.13 call for instead of one flat pass over
// the whole operand.
func multiplyCore[T vkernel.Scalar](dst, a, bt vkernel.View[T], rowStart, rowEnd, kr, kc, rowPanel, colPanel, kPanel int) {
	p := dst.Cols()
	k := a.Cols()

	for jp := 0; jp < p; jp += colPanel {
		jpEnd := min(jp+colPanel, p)
		for kp := 0; kp < k; kp += kPanel {
			kpEnd := min(kp+kPanel, k)
			for ip := rowStart; ip < rowEnd; ip += rowPanel {
				ipEnd := min(ip+rowPanel, rowEnd)
				multiplyPanel(dst, a, bt, ip, ipEnd, jp, jpEnd, kp, kpEnd, kr, kc)
			}
		}
	}
}

// multiplyPanel runs the register-tile blocked triple loop over one
// (rowStart:rowEnd, colStart:colEnd) output panel, accumulating only the
// k range [kStart, kEnd) — one cache panel's worth of work in
// multiplyCore's nesting. Because it reads dst's current value as the
// tile seed and writes the updated sum back, calling it repeatedly across
// successive K-panels for the same output panel accumulates correctly,
// exactly like the un-panelled loop accumulating across the whole of K in
// one pass.
func multiplyPanel[T vkernel.Scalar](dst, a, bt vkernel.View[T], rowStart, rowEnd, colStart, colEnd, kStart, kEnd, kr, kc int) {
	blockEnd := rowStart + ((rowEnd-rowStart)/kr)*kr
	blockCol := colStart + ((colEnd-colStart)/kc)*kc

	for i := rowStart; i < blockEnd; i += kr {
		for j := colStart; j < blockCol; j += kc {
			accumulateTile(dst, a, bt, i, j, kr, kc, kStart, kEnd)
		}
		// residual columns for these kr rows
		for j := blockCol; j < colEnd; j++ {
			for r := 0; r < kr; r++ {
				row := i + r
				sum := dst.At(row, j)
				aRow := a.Row(row)
				btRow := bt.Row(j)
				for kk := kStart; kk < kEnd; kk++ {
					sum = mulAddScalar(aRow[kk], btRow[kk], sum)
				}
				dst.Set(row, j, sum)
			}
		}
	}

	// residual rows (panel height mod Kr), full panel column range,
	// scalar triple loop.
	for i := blockEnd; i < rowEnd; i++ {
		aRow := a.Row(i)
		for j := colStart; j < colEnd; j++ {
			btRow := bt.Row(j)
			sum := dst.At(i, j)
			for kk := kStart; kk < kEnd; kk++ {
				sum = mulAddScalar(aRow[kk], btRow[kk], sum)
			}
			dst.Set(i, j, sum)
		}
	}
}

// accumulateTile computes the Kr×Kc sub-panel of dst at (i, j) as a
// running sum of rank-1 updates over k in [kStart, kEnd): for each k, the
// length-Kr column of A at (i, k) outer-producted against the length-Kc
// column of B' at (j, k) (B' being the already-transposed B, so this
// column is one contiguous row of bt). The accumulation itself is
// RegisterTile.OuterProductAdd, the register-tile micro-kernel's core
// operation — this is the one place in Multiply that drives it, matching
// spec.md §4.13's "transposed B" residual note applied to the full-block
// path too.
func accumulateTile[T vkernel.Scalar](dst, a, bt vkernel.View[T], i, j, kr, kc, kStart, kEnd int) {
	tile := vkernel.NewRegisterTile[T](kr, kc)
	for r := 0; r < kr; r++ {
		tile.SetRow(r, vkernel.NewVec(append([]T(nil), dst.Row(i+r)[j:j+kc]...)))
	}

	aCol := make([]T, kr)
	btCol := make([]T, kc)
	for kk := kStart; kk < kEnd; kk++ {
		for r := 0; r < kr; r++ {
			aCol[r] = a.At(i+r, kk)
		}
		for c := 0; c < kc; c++ {
			btCol[c] = bt.At(j+c, kk)
		}
		outerProductAdd(&tile, aCol, btCol)
	}

	for r := 0; r < kr; r++ {
		copy(dst.Row(i+r)[j:j+kc], tile.Row(r).Data())
	}
}

// outerProductAdd dispatches a tile rank-1 update to vkernel.OuterProductAdd
// (real T) or vkernel.OuterProductAddComplex (complex T). T is Scalar here
// because accumulateTile serves both real and complex Multiply instantiations,
// but RegisterTile's two update kernels are each constrained to one half of
// Scalar, so the concrete-type switch below — the same any(...).(type) +
// any(...).(T) idiom fmaScalar uses — picks the one that type-checks.
func outerProductAdd[T vkernel.Scalar](t *vkernel.RegisterTile[T], row, col []T) {
	switch rowVal := any(row).(type) {
	case []float32:
		vkernel.OuterProductAdd(any(t).(*vkernel.RegisterTile[float32]), rowVal, any(col).([]float32))
	case []float64:
		vkernel.OuterProductAdd(any(t).(*vkernel.RegisterTile[float64]), rowVal, any(col).([]float64))
	case []complex64:
		vkernel.OuterProductAddComplex(any(t).(*vkernel.RegisterTile[complex64]), rowVal, any(col).([]complex64))
	case []complex128:
		vkernel.OuterProductAddComplex(any(t).(*vkernel.RegisterTile[complex128]), rowVal, any(col).([]complex128))
	}
}

// mulAddScalar computes a*b + c, using math.FMA for real T via the
// fusedunion fast-path helper and native multiply-add for complex T
// (Go's complex * and + are already correct; no FMA instruction exists
// for complex lanes).
func mulAddScalar[T vkernel.Scalar](a, b, c T) T {
	var zero T
	switch any(zero).(type) {
	case complex64, complex128:
		return c + a*b
	default:
		return fmaScalar(fmaAdd, a, b, c)
	}
}
