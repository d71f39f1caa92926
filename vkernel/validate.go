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

package vkernel

// This file implements the boundary validation of §4.6 for this package:
// helpers that convert a caller's malformed matrix shape into a
// *vkernel.Error instead of an out-of-bounds panic. They are unexported,
// so the family kernels in contrib/kernels and contrib/triangular do not
// call them; those packages declare their own local equivalents.
// Internal invariant violations below this boundary (a blocking policy
// that derives a zero tile size, a driver that double-partitions a row
// range) remain panics, matching contrib/matvec.BaseMatVec's split in the
// teacher: callers get errors, the library's own bugs get stack traces.

const maxDim = 1 << 30

// requireNonNegativeDims rejects negative or absurdly large dimensions
// before they reach a multiplication that could overflow int.
func requireNonNegativeDims(op string, matrix, m, n int) error {
	if m < 0 || n < 0 {
		return newError(op, InvalidArgument, matrix, "negative dimension")
	}
	if m > maxDim || n > maxDim {
		return newError(op, DimensionOverflow, matrix, "dimension exceeds limit")
	}
	return nil
}

// requireSameShape rejects a shape mismatch between two operands, the
// most common boundary check across unite/fused_union/reduce.
func requireSameShape[T Scalar](op string, a, b View[T]) error {
	if err := requireNonNegativeDims(op, 0, a.Rows(), a.Cols()); err != nil {
		return err
	}
	if err := requireNonNegativeDims(op, 1, b.Rows(), b.Cols()); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return newError(op, InvalidArgument, 1, "shape mismatch")
	}
	return nil
}

// requireMatMulShapes rejects shapes that cannot be multiplied: a is
// M×K and b must be K×N. The output shape is checked separately by
// requireOutputShape.
func requireMatMulShapes[T Scalar](op string, a, b View[T]) error {
	if err := requireNonNegativeDims(op, 0, a.Rows(), a.Cols()); err != nil {
		return err
	}
	if err := requireNonNegativeDims(op, 1, b.Rows(), b.Cols()); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return newError(op, InvalidArgument, 1, "inner dimension mismatch")
	}
	return nil
}

// requireOutputShape rejects an output View whose shape does not match
// (m, n) exactly — used once the result shape is known, to validate a
// caller-supplied destination View before writing into it.
func requireOutputShape[T Scalar](op string, out View[T], m, n int) error {
	if out.Rows() != m || out.Cols() != n {
		return newError(op, InvalidArgument, 2, "output shape mismatch")
	}
	return nil
}

// requireSquare rejects a non-square matrix, the shape the triangular
// substitution family needs.
func requireSquare[T Scalar](op string, a View[T], matrix int) error {
	if err := requireNonNegativeDims(op, matrix, a.Rows(), a.Cols()); err != nil {
		return err
	}
	if a.Rows() != a.Cols() {
		return newError(op, InvalidArgument, matrix, "matrix is not square")
	}
	return nil
}

// requireVectorLen rejects a right-hand-side vector whose length does
// not match the triangular system's dimension.
func requireVectorLen(op string, n, want int) error {
	if n != want {
		return newError(op, InvalidArgument, 1, "vector length mismatch")
	}
	return nil
}
