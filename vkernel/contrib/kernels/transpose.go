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

import "github.com/arborix/vkernel"

// Transpose writes dst[j,i] = src[i,j] for an M×N src into an N×M dst,
// per spec.md §4.8. Grounded on contrib/matmul/transpose_base.go's
// BaseTranspose2D: an L×L in-register block transpose (here, an L×L
// scalar block copy standing in for the teacher's
// InterleaveLower/InterleaveUpper butterfly, since vkernel.Vec has no
// lane-shuffle primitive of its own — see tags.go), with scalar fallback
// on the bottom/right/corner edges.
func Transpose[T vkernel.Scalar, S vkernel.Tag](dst, src vkernel.View[T]) error {
	m, n := src.Rows(), src.Cols()
	if err := checkDims("Transpose", src); err != nil {
		return err
	}
	if err := requireOutputShape("Transpose", dst, n, m); err != nil {
		return err
	}

	lanes := vkernel.LaneCount[T, S]()
	if lanes < 1 {
		lanes = 1
	}
	blockM := (m / lanes) * lanes
	blockN := (n / lanes) * lanes

	for i := 0; i < blockM; i += lanes {
		for j := 0; j < blockN; j += lanes {
			transposeBlock(dst, src, i, j, lanes)
		}
	}
	transposeEdges(dst, src, m, n, blockM, blockN)
	return nil
}

// transposeBlock copies one lanes×lanes block from src at (i,j) into dst
// at (j,i), transposed.
func transposeBlock[T vkernel.Scalar](dst, src vkernel.View[T], i, j, lanes int) {
	for r := 0; r < lanes; r++ {
		srcRow := src.Row(i + r)
		for c := 0; c < lanes; c++ {
			dst.Set(j+c, i+r, srcRow[j+c])
		}
	}
}

// transposeEdges handles the bottom strip (rows >= blockM), right strip
// (cols >= blockN), and their overlap, with a plain scalar double loop.
func transposeEdges[T vkernel.Scalar](dst, src vkernel.View[T], m, n, blockM, blockN int) {
	for i := blockM; i < m; i++ {
		srcRow := src.Row(i)
		for j := 0; j < n; j++ {
			dst.Set(j, i, srcRow[j])
		}
	}
	for i := 0; i < blockM; i++ {
		srcRow := src.Row(i)
		for j := blockN; j < n; j++ {
			dst.Set(j, i, srcRow[j])
		}
	}
}

func requireOutputShape[T vkernel.Scalar](op string, out vkernel.View[T], m, n int) error {
	if out.Rows() != m || out.Cols() != n {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 1, Detail: "output shape mismatch"}
	}
	return nil
}
