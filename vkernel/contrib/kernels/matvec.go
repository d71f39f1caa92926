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

// MatVec computes result[i] = Σ_j m[i,j]·v[j] for m of shape rows×cols and
// v of length cols, a call-through to Multiply treating v as a cols×1
// column matrix. Grounded on contrib/matvec/matvec_base.go's BaseMatVec,
// generalized here to the View/Multiply machinery rather than a dedicated
// row-dot loop, since a single column of Kc-wide tiles degrades to exactly
// that loop when Multiply's inner blocking width collapses to 1.
func MatVec[T vkernel.Scalar, S vkernel.Tag](m vkernel.View[T], v []T) ([]T, error) {
	if err := requireVectorLen("MatVec", len(v), m.Cols()); err != nil {
		return nil, err
	}
	vView, err := vkernel.FromFlat(v, m.Cols(), 1)
	if err != nil {
		return nil, err
	}
	dst := vkernel.NewView[T](m.Rows(), 1)
	if err := Multiply[T, S](dst, m, vView); err != nil {
		return nil, err
	}
	return dst.Flat(), nil
}

func requireVectorLen(op string, n, want int) error {
	if n != want {
		return &vkernel.Error{Op: op, Kind: vkernel.InvalidArgument, Matrix: 1, Detail: "vector length mismatch"}
	}
	return nil
}
