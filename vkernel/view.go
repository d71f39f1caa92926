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

import "unsafe"

// View is the matrix data model of §3: an M×N matrix held as M row
// pointers into one contiguous allocation. Every public entry point in
// §6 takes and returns Views rather than bare []T, so the contiguity
// invariant — row[M-1]+N-row[0] == M*N — only needs proving once, at
// construction time, via FromFlat or FromRows.
type View[T Scalar] struct {
	rows [][]T
	m, n int
}

// Rows returns the row count M.
func (v View[T]) Rows() int { return v.m }

// Cols returns the column count N.
func (v View[T]) Cols() int { return v.n }

// Row returns row r as a slice of length N (no copy).
func (v View[T]) Row(r int) []T { return v.rows[r] }

// At returns the element at (row, col).
func (v View[T]) At(row, col int) T { return v.rows[row][col] }

// Set writes the element at (row, col).
func (v View[T]) Set(row, col int, x T) { v.rows[row][col] = x }

// Flat returns the single backing slice of length M*N, valid because
// construction already proved contiguity. Panics if M == 0.
func (v View[T]) Flat() []T {
	base := unsafe.Pointer(&v.rows[0][0])
	return unsafe.Slice((*T)(base), v.m*v.n)
}

// Stride returns N, the element count separating the start of one row
// from the next in the flat backing store.
func (v View[T]) Stride() int { return v.n }

// FromFlat builds a View over a single contiguous M*N-length slice, the
// flat form of §3's data model. len(data) must equal m*n.
func FromFlat[T Scalar](data []T, m, n int) (View[T], error) {
	if m < 0 || n < 0 {
		return View[T]{}, newError("FromFlat", InvalidArgument, 0, "negative dimension")
	}
	if m == 0 || n == 0 {
		return View[T]{m: m, n: n}, nil
	}
	if m > 0 && n > 0 && m > (1<<62)/n {
		return View[T]{}, newError("FromFlat", DimensionOverflow, 0, "m*n overflows")
	}
	if len(data) != m*n {
		return View[T]{}, newError("FromFlat", LayoutError, 0, "len(data) != m*n")
	}
	rows := make([][]T, m)
	for i := range rows {
		rows[i] = data[i*n : (i+1)*n]
	}
	return View[T]{rows: rows, m: m, n: n}, nil
}

// FromRows builds a View from M independently supplied row slices, the
// row-pointer form of §3's data model. It proves the contiguity
// invariant by address arithmetic — row i+1 must begin exactly n
// elements past row i — rather than assuming it, since row-pointer
// construction is precisely the path where a caller could hand in
// non-contiguous storage.
func FromRows[T Scalar](rows [][]T) (View[T], error) {
	m := len(rows)
	if m == 0 {
		return View[T]{}, nil
	}
	n := len(rows[0])
	for i, r := range rows {
		if len(r) != n {
			return View[T]{}, newError("FromRows", LayoutError, i, "ragged row length")
		}
	}
	if n == 0 {
		return View[T]{rows: rows, m: m, n: 0}, nil
	}
	if !rowsContiguous(rows, n) {
		return View[T]{}, newError("FromRows", LayoutError, 0, "rows are not contiguous")
	}
	return View[T]{rows: rows, m: m, n: n}, nil
}

// rowsContiguous checks that each row's backing address follows directly
// from the previous row's, i.e. &rows[i+1][0] == &rows[i][0] + n*elemSize.
func rowsContiguous[T Scalar](rows [][]T, n int) bool {
	if len(rows) < 2 {
		return true
	}
	stride := uintptr(n) * uintptr(elemSize[T]())
	base := uintptr(unsafe.Pointer(&rows[0][0]))
	for i := 1; i < len(rows); i++ {
		addr := uintptr(unsafe.Pointer(&rows[i][0]))
		if addr != base+uintptr(i)*stride {
			return false
		}
	}
	return true
}

// NewView allocates a fresh zeroed M×N View backed by one contiguous
// slice, for entry points that produce new output (Zeros, Ones,
// Identity, Transpose's destination, …).
func NewView[T Scalar](m, n int) View[T] {
	if m == 0 || n == 0 {
		return View[T]{m: m, n: n}
	}
	data := make([]T, m*n)
	v, _ := FromFlat(data, m, n)
	return v
}
