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

// Package triangular implements the two triangular-solve primitives the
// kernel layer's family kernels compose into a full linear solve: forward
// and backward substitution against an already-factored triangular
// matrix. Pivoting, factorization (LU/QR/Householder), and the full
// solve composite are out of scope here — a caller owning those
// factors an arbitrary system, then hands the resulting L/U to this
// package.
package triangular

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/kernels"
)

// absF32Tol and absF64Tol are the pivot-tolerance thresholds a diagonal
// element must clear before it's treated as singular.
const (
	absF32Tol = 1e-6
	absF64Tol = 1e-12
)

// ForwardSubstitution solves L·y = b for y, where L is n×n lower
// triangular (entries above the diagonal are ignored) and b is n×1.
// If unitDiag is true, L's diagonal is assumed to be all-ones and is
// never read or divided by. Otherwise a diagonal entry within tolerance
// of zero reports a *vkernel.Error with Kind Singular.
//
// Grounded on contrib/matvec/matvec_base.go's row-dot loop: row i's
// already-solved prefix y[0:i] is dotted against L[i, 0:i] exactly the
// way BaseMatVec dots a full row against v, just over a shrinking range —
// composed here as kernels.FusedReduce[mul, add] per spec.md §4.14,
// rather than an inlined accumulate loop.
func ForwardSubstitution[T vkernel.Scalar, S vkernel.Tag](L, b, y vkernel.View[T], unitDiag bool) error {
	n := L.Rows()
	if err := requireSquare("ForwardSubstitution", L); err != nil {
		return err
	}
	if err := requireColumnVector("ForwardSubstitution", b, n, 1); err != nil {
		return err
	}
	if err := requireColumnVector("ForwardSubstitution", y, n, 2); err != nil {
		return err
	}

	solved := y.Flat()
	for i := 0; i < n; i++ {
		row := L.Row(i)
		sum, err := prefixDot[T, S](row[:i], solved[:i])
		if err != nil {
			return err
		}
		rhs := sub(b.At(i, 0), sum)
		if unitDiag {
			y.Set(i, 0, rhs)
			continue
		}
		diag := row[i]
		if isNearZero(diag) {
			return &vkernel.Error{Op: "ForwardSubstitution", Kind: vkernel.Singular, Matrix: 0, Detail: "zero pivot on diagonal"}
		}
		y.Set(i, 0, div(rhs, diag))
	}
	return nil
}

// BackwardSubstitution solves U·x = y for x, where U is n×n upper
// triangular (entries below the diagonal are ignored) and y is n×1.
// Mirrors ForwardSubstitution, walking rows from n-1 down to 0.
func BackwardSubstitution[T vkernel.Scalar, S vkernel.Tag](U, y, x vkernel.View[T], unitDiag bool) error {
	n := U.Rows()
	if err := requireSquare("BackwardSubstitution", U); err != nil {
		return err
	}
	if err := requireColumnVector("BackwardSubstitution", y, n, 1); err != nil {
		return err
	}
	if err := requireColumnVector("BackwardSubstitution", x, n, 2); err != nil {
		return err
	}

	solved := x.Flat()
	for i := n - 1; i >= 0; i-- {
		row := U.Row(i)
		sum, err := prefixDot[T, S](row[i+1:], solved[i+1:])
		if err != nil {
			return err
		}
		rhs := sub(y.At(i, 0), sum)
		if unitDiag {
			x.Set(i, 0, rhs)
			continue
		}
		diag := row[i]
		if isNearZero(diag) {
			return &vkernel.Error{Op: "BackwardSubstitution", Kind: vkernel.Singular, Matrix: 0, Detail: "zero pivot on diagonal"}
		}
		x.Set(i, 0, div(rhs, diag))
	}
	return nil
}

func requireSquare[T vkernel.Scalar](op string, a vkernel.View[T]) error {
	if a.Rows() != a.Cols() {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 0, Detail: "matrix not square"}
	}
	return nil
}

func requireColumnVector[T vkernel.Scalar](op string, v vkernel.View[T], n, matrix int) error {
	if v.Rows() != n || v.Cols() != 1 {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: matrix, Detail: "expected an n×1 column vector"}
	}
	return nil
}

// prefixDot computes the dot product of two equal-length slices via
// kernels.FusedReduce[mul, add], the same fused op a family-kernel caller
// would use for a row-dot (spec.md §4.14). An empty range — row i/n-i-1's
// already-solved prefix/suffix on the matrix's first/last step — returns
// zero without building a View, since FusedReduce's shape validation
// rejects zero-length operands.
func prefixDot[T vkernel.Scalar, S vkernel.Tag](row, solved []T) (T, error) {
	var zero T
	n := len(row)
	if n == 0 {
		return zero, nil
	}
	rowView, err := vkernel.FromFlat(row, 1, n)
	if err != nil {
		return zero, err
	}
	solvedView, err := vkernel.FromFlat(solved, 1, n)
	if err != nil {
		return zero, err
	}
	return kernels.FusedReduce[T, kernels.MulOp[T], kernels.AddReduceOp[T], S](rowView, solvedView, zero)
}

func sub[T vkernel.Scalar](a, b T) T {
	return a - b
}

func div[T vkernel.Scalar](a, b T) T {
	return a / b
}

// isNearZero reports whether x is within the §7 pivot tolerance of zero:
// 1e-6 for float32/complex64, 1e-12 for float64/complex128, using
// gonum's EqualWithinAbsOrRel rather than a hand-rolled comparison.
func isNearZero[T vkernel.Scalar](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return floats.EqualWithinAbsOrRel(float64(v), 0, absF32Tol, absF32Tol)
	case float64:
		return floats.EqualWithinAbsOrRel(v, 0, absF64Tol, absF64Tol)
	case complex64:
		return floats.EqualWithinAbsOrRel(float64(cmplx.Abs(complex128(v))), 0, absF32Tol, absF32Tol)
	case complex128:
		return floats.EqualWithinAbsOrRel(cmplx.Abs(v), 0, absF64Tol, absF64Tol)
	default:
		return false
	}
}
