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

// Package interop adapts vkernel's View[T] to gonum's blas64.General
// representation, letting a caller hand a vkernel-backed matrix to any
// gonum routine that already accepts blas64.General (or the reverse:
// wrap a gonum result as a View for further vkernel processing).
package interop

import (
	"gonum.org/v1/gonum/blas64"

	"github.com/arborix/vkernel"
)

// ToBLAS64 copies a's contents into a blas64.General with row-major
// stride equal to its column count. A copy is used rather than a
// zero-copy alias because vkernel.View's row-pointer storage (FromRows)
// isn't guaranteed to share blas64.General's single-contiguous-slice
// layout the way FromFlat-backed views do.
func ToBLAS64(a vkernel.View[float64]) blas64.General {
	m, n := a.Rows(), a.Cols()
	data := make([]float64, m*n)
	for i := 0; i < m; i++ {
		copy(data[i*n:(i+1)*n], a.Row(i))
	}
	return blas64.General{Rows: m, Cols: n, Stride: n, Data: data}
}

// FromBLAS64 wraps a blas64.General's data as a vkernel.View, failing
// with *vkernel.Error{Kind: LayoutError} if g's stride doesn't match its
// column count (vkernel has no notion of a padded row stride).
func FromBLAS64(g blas64.General) (vkernel.View[float64], error) {
	if g.Stride != g.Cols {
		return vkernel.View[float64]{}, &vkernel.Error{
			Op:     "FromBLAS64",
			Kind:   vkernel.LayoutError,
			Matrix: 0,
			Detail: "blas64.General stride does not match column count",
		}
	}
	return vkernel.FromFlat(g.Data, g.Rows, g.Cols)
}
