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

// RegisterTile is the compile-time-unrolled register-tile accumulator of
// §4.2/§4.3: Rows × Cols scalar elements, kept resident during one family
// kernel pass. It generalizes ajroetker-go-highway/hwy/tile.go's square
// Tile[T] (TileDim × TileDim, sized for one ISA's register width) to an
// arbitrary Rr × Rc rectangle, since the family kernels in §3 each declare
// their own (Rr, Rc) geometry rather than sharing one square shape.
type RegisterTile[T Scalar] struct {
	data []T
	rows int
	cols int
}

// NewRegisterTile allocates a zeroed rows × cols tile.
func NewRegisterTile[T Scalar](rows, cols int) RegisterTile[T] {
	return RegisterTile[T]{data: make([]T, rows*cols), rows: rows, cols: cols}
}

// Rows returns the tile's row count.
func (t RegisterTile[T]) Rows() int { return t.rows }

// Cols returns the tile's column count (Rc·L scalar elements).
func (t RegisterTile[T]) Cols() int { return t.cols }

// Zero clears every element of the tile.
func (t *RegisterTile[T]) Zero() {
	var zero T
	for i := range t.data {
		t.data[i] = zero
	}
}

// At returns the element at (row, col).
func (t RegisterTile[T]) At(row, col int) T { return t.data[row*t.cols+col] }

// Set writes the element at (row, col).
func (t *RegisterTile[T]) Set(row, col int, v T) { t.data[row*t.cols+col] = v }

// Load fills the tile from a Rows×Cols block of src starting at
// (row, col), where src has stride elements per row. Caller guarantees
// row+t.rows <= M and col+t.cols <= N (the driver's job, not this layer's,
// per §4.2).
func (t *RegisterTile[T]) Load(src []T, row, col, stride int) {
	for r := 0; r < t.rows; r++ {
		srcRow := src[(row+r)*stride+col : (row+r)*stride+col+t.cols]
		copy(t.data[r*t.cols:(r+1)*t.cols], srcRow)
	}
}

// Store writes the tile back to a Rows×Cols block of dst at (row, col).
func (t RegisterTile[T]) Store(dst []T, row, col, stride int) {
	for r := 0; r < t.rows; r++ {
		dstRow := dst[(row+r)*stride+col : (row+r)*stride+col+t.cols]
		copy(dstRow, t.data[r*t.cols:(r+1)*t.cols])
	}
}

// Row returns a view of tile row r as a Vec (no copy: callers must not
// retain across a subsequent Zero/Load).
func (t RegisterTile[T]) Row(r int) Vec[T] {
	return Vec[T]{data: t.data[r*t.cols : (r+1)*t.cols]}
}

// SetRow overwrites tile row r from v.
func (t *RegisterTile[T]) SetRow(r int, v Vec[T]) {
	copy(t.data[r*t.cols:(r+1)*t.cols], v.data)
}

// OuterProductAdd accumulates tile[i][j] += row[i]*col[j] for all i, j —
// the register-tile micro-kernel's core operation for multiply (§4.13),
// directly generalizing ajroetker-go-highway/hwy/tile.go's
// OuterProductAdd from a square TileDim×TileDim tile to this tile's
// Rows×Cols shape.
func OuterProductAdd[T Real](t *RegisterTile[T], row, col []T) {
	rows := min(t.rows, len(row))
	cols := min(t.cols, len(col))
	for i := 0; i < rows; i++ {
		ri := row[i]
		base := i * t.cols
		for j := 0; j < cols; j++ {
			t.data[base+j] = fmaLane(ri, col[j], t.data[base+j])
		}
	}
}

// OuterProductAddComplex is OuterProductAdd's complex counterpart, used by
// multiply's complex path (§4.13's "inner op is the complex-mul
// reduction").
func OuterProductAddComplex[T Complex](t *RegisterTile[T], row, col []T) {
	rows := min(t.rows, len(row))
	cols := min(t.cols, len(col))
	for i := 0; i < rows; i++ {
		ri := row[i]
		base := i * t.cols
		for j := 0; j < cols; j++ {
			t.data[base+j] += ri * col[j]
		}
	}
}
