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
	"math"

	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/blocking"
)

// FusedUnionMatrix computes dst[i,j] = F(a[i,j], b[i,j], c[i,j]) per
// spec.md §4.11, where F is UnionFirst: O2(O1(A,B), C) or FusionFirst:
// O1(A, O2(B,C)). Grounded on hwy/ops_base.go's FMA/MulAdd and
// ajroetker-go-highway/hwy/tile.go's fmaScalar/fmsScalar: the four
// (P, O1, O2) combinations recognized below collapse to one FMAdd/FMSub/
// FNMAdd call instead of materializing the O1 (or O2) intermediate.
func FusedUnionMatrix[T vkernel.Scalar, P FusionPolicy, O1, O2 BinaryOp[T], S vkernel.Tag](dst, a, b, c vkernel.View[T]) error {
	if err := requireSameShape("FusedUnionMatrix", a, b); err != nil {
		return err
	}
	if err := requireSameShape("FusedUnionMatrix", a, c); err != nil {
		return err
	}
	if err := requireOutputShape("FusedUnionMatrix", dst, a.Rows(), a.Cols()); err != nil {
		return err
	}
	var p P
	var op1 O1
	var op2 O2
	pattern, useFMA := fmaPattern[T](p, op1, op2)

	lanes := vkernel.LaneCount[T, S]()
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.FusedUnion, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				aRow, bRow, cRow, dRow := a.Row(i), b.Row(i), c.Row(i), dst.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					va := vkernel.Load[T, S](aRow[j : j+lanes])
					vb := vkernel.Load[T, S](bRow[j : j+lanes])
					vc := vkernel.Load[T, S](cRow[j : j+lanes])
					var out vkernel.Vec[T]
					if useFMA {
						out = applyFMA(pattern, va, vb, vc)
					} else if p.unionFirst() {
						out = op2.ApplyVec(op1.ApplyVec(va, vb), vc)
					} else {
						out = op1.ApplyVec(va, op2.ApplyVec(vb, vc))
					}
					vkernel.Store[T, S](out, dRow[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					if p.unionFirst() {
						dRow[j] = op2.ApplyScalar(op1.ApplyScalar(aRow[j], bRow[j]), cRow[j])
					} else {
						dRow[j] = op1.ApplyScalar(aRow[j], op2.ApplyScalar(bRow[j], cRow[j]))
					}
				}
			}
		}
	}
	return nil
}

// FusedUnionScalarB computes dst[i,j] = F(a[i,j], b, c[i,j]), the scalar
// variant where the middle operand B is a fixed scalar — signature
// (A, b, C, D) of spec.md §4.11.
func FusedUnionScalarB[T vkernel.Scalar, P FusionPolicy, O1, O2 BinaryOp[T], S vkernel.Tag](dst, a vkernel.View[T], b T, c vkernel.View[T]) error {
	if err := requireSameShape("FusedUnionScalarB", a, c); err != nil {
		return err
	}
	if err := requireOutputShape("FusedUnionScalarB", dst, a.Rows(), a.Cols()); err != nil {
		return err
	}
	var p P
	var op1 O1
	var op2 O2
	pattern, useFMA := fmaPattern[T](p, op1, op2)
	bVec := vkernel.Splat[T, S](b)

	lanes := vkernel.LaneCount[T, S]()
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.FusedUnion, blocking.DefaultCacheBudget())
	rowBlock := panelSize(blk.B2, m)
	colBlock := panelSize(blk.B3, n)

	for ib := 0; ib < m; ib += rowBlock {
		iEnd := min(ib+rowBlock, m)
		for jb := 0; jb < n; jb += colBlock {
			jEnd := min(jb+colBlock, n)
			for i := ib; i < iEnd; i++ {
				aRow, cRow, dRow := a.Row(i), c.Row(i), dst.Row(i)
				j := jb
				for ; j+lanes <= jEnd; j += lanes {
					va := vkernel.Load[T, S](aRow[j : j+lanes])
					vc := vkernel.Load[T, S](cRow[j : j+lanes])
					var out vkernel.Vec[T]
					if useFMA {
						out = applyFMA(pattern, va, bVec, vc)
					} else if p.unionFirst() {
						out = op2.ApplyVec(op1.ApplyVec(va, bVec), vc)
					} else {
						out = op1.ApplyVec(va, op2.ApplyVec(bVec, vc))
					}
					vkernel.Store[T, S](out, dRow[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					if p.unionFirst() {
						dRow[j] = op2.ApplyScalar(op1.ApplyScalar(aRow[j], b), cRow[j])
					} else {
						dRow[j] = op1.ApplyScalar(aRow[j], op2.ApplyScalar(b, cRow[j]))
					}
				}
			}
		}
	}
	return nil
}

// FusedUnionScalarC computes dst[i,j] = F(a[i,j], b[i,j], c), the scalar
// variant where the last operand C is a fixed scalar — signature
// (A, B, c, D) of spec.md §4.11.
func FusedUnionScalarC[T vkernel.Scalar, P FusionPolicy, O1, O2 BinaryOp[T], S vkernel.Tag](dst, a, b vkernel.View[T], c T) error {
	if err := requireSameShape("FusedUnionScalarC", a, b); err != nil {
		return err
	}
	if err := requireOutputShape("FusedUnionScalarC", dst, a.Rows(), a.Cols()); err != nil {
		return err
	}
	var p P
	var op1 O1
	var op2 O2
	pattern, useFMA := fmaPattern[T](p, op1, op2)
	cVec := vkernel.Splat[T, S](c)

	lanes := vkernel.LaneCount[T, S]()
	m, n := a.Rows(), a.Cols()

	blk := blocking.Derive[T, S](blocking.FusedUnion, blocking.DefaultCacheBudget())
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
					var out vkernel.Vec[T]
					if useFMA {
						out = applyFMA(pattern, va, vb, cVec)
					} else if p.unionFirst() {
						out = op2.ApplyVec(op1.ApplyVec(va, vb), cVec)
					} else {
						out = op1.ApplyVec(va, op2.ApplyVec(vb, cVec))
					}
					vkernel.Store[T, S](out, dRow[j:j+lanes])
				}
				for ; j < jEnd; j++ {
					if p.unionFirst() {
						dRow[j] = op2.ApplyScalar(op1.ApplyScalar(aRow[j], bRow[j]), c)
					} else {
						dRow[j] = op1.ApplyScalar(aRow[j], op2.ApplyScalar(bRow[j], c))
					}
				}
			}
		}
	}
	return nil
}

// fmaCode names a single-instruction FMA form recognized below: the sign
// pattern applied to (a, b, c) -> a*b [+ or -] c, or c [+ or -] a*b.
type fmaCode int

const (
	fmaNone fmaCode = iota
	fmaAdd          // a*b + c
	fmaSub          // a*b - c
	fmaAddRev       // b*c + a  (operands reversed: accumulator is a)
	fmaSubRevNeg    // a - b*c  (operands reversed: accumulator is a)
)

// fmaPattern detects the four additive/subtractive (P, O1, O2)
// combinations named in spec.md §4.11 that collapse to one FMA,
// restricted to real T (FMA itself is real-only per §4.1). Complex T and
// unrecognized combinations fall back to the generic two-step path in
// the caller. The remaining four sign variants named in §4.11
// (fmaddsub/fmsubadd's alternating-lane forms, and fnmsub) are not
// reachable through this (P, O1, O2) combinatorics — they require a
// per-lane alternating sign or a unary negate this op set doesn't
// expose — and stay available directly as vkernel.FMAddSub/FMSubAdd/
// FNMSub for callers assembling a custom kernel.
func fmaPattern[T vkernel.Scalar](p FusionPolicy, op1, op2 BinaryOp[T]) (fmaCode, bool) {
	var zero T
	switch any(zero).(type) {
	case complex64, complex128:
		return fmaNone, false
	}

	_, add1 := op1.(AddOp[T])
	_, sub1 := op1.(SubOp[T])
	_, mul1 := op1.(MulOp[T])
	_, mul2 := op2.(MulOp[T])
	_, add2 := op2.(AddOp[T])
	_, sub2 := op2.(SubOp[T])
	union := p.unionFirst()

	switch {
	case !union && add1 && mul2:
		// FusionFirst(add, mul): A + B*C == fmadd(B, C, A)
		return fmaAddRev, true
	case !union && sub1 && mul2:
		// FusionFirst(sub, mul): A - B*C == fnmadd(B, C, A)
		return fmaSubRevNeg, true
	case union && mul1 && add2:
		// UnionFirst(mul, add): A*B + C == fmadd(A, B, C)
		return fmaAdd, true
	case union && mul1 && sub2:
		// UnionFirst(mul, sub): A*B - C == fmsub(A, B, C)
		return fmaSub, true
	}
	return fmaNone, false
}

// applyFMA evaluates the recognized pattern lane-wise using math.FMA,
// operating on real T only (callers already excluded complex via
// fmaPattern). a, b, c are always the literal A, B, C operands of the
// fused_union call in that order; which one plays the accumulator role
// is decided per fmaCode below, not by argument reordering at the call
// site.
func applyFMA[T vkernel.Scalar](code fmaCode, a, b, c vkernel.Vec[T]) vkernel.Vec[T] {
	ad, bd, cd := a.Data(), b.Data(), c.Data()
	n := min(len(ad), min(len(bd), len(cd)))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = fmaScalar(code, ad[i], bd[i], cd[i])
	}
	return vkernel.NewVec(out)
}

func fmaScalar[T vkernel.Scalar](code fmaCode, a, b, c T) T {
	switch av := any(a).(type) {
	case float32:
		bv, cv := any(b).(float32), any(c).(float32)
		return any(float32(fmaFloat64(code, float64(av), float64(bv), float64(cv)))).(T)
	case float64:
		bv, cv := any(b).(float64), any(c).(float64)
		return any(fmaFloat64(code, av, bv, cv)).(T)
	default:
		return c
	}
}

// fmaFloat64 evaluates one fused form given the literal (a, b, c) =
// (A, B, C) operands of the fused_union call.
func fmaFloat64(code fmaCode, a, b, c float64) float64 {
	switch code {
	case fmaAdd: // A*B + C
		return math.FMA(a, b, c)
	case fmaSub: // A*B - C
		return math.FMA(a, b, -c)
	case fmaAddRev: // A + B*C
		return math.FMA(b, c, a)
	case fmaSubRevNeg: // A - B*C
		return math.FMA(-b, c, a)
	default:
		return c
	}
}
