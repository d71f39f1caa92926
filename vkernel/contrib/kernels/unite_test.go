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
	"testing"

	"github.com/arborix/vkernel"
)

func TestUniteMatrixAdd(t *testing.T) {
	a, _ := vkernel.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	b, _ := vkernel.FromFlat([]float32{10, 20, 30, 40}, 2, 2)
	dst := vkernel.NewView[float32](2, 2)

	if err := UniteMatrix[float32, AddOp[float32], vkernel.Tag256](dst, a, b); err != nil {
		t.Fatalf("UniteMatrix: %v", err)
	}
	want := []float32{11, 22, 33, 44}
	got := dst.Flat()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUniteScalarDiv(t *testing.T) {
	a, _ := vkernel.FromFlat([]float64{2, 4, 6, 8}, 2, 2)
	dst := vkernel.NewView[float64](2, 2)

	if err := UniteScalar[float64, DivOp[float64], vkernel.NoneTag](dst, a, 2); err != nil {
		t.Fatalf("UniteScalar: %v", err)
	}
	want := []float64{1, 2, 3, 4}
	got := dst.Flat()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUniteMatrixShapeMismatch(t *testing.T) {
	a := vkernel.NewView[float32](2, 2)
	b := vkernel.NewView[float32](3, 2)
	dst := vkernel.NewView[float32](2, 2)
	if err := UniteMatrix[float32, SubOp[float32], vkernel.NoneTag](dst, a, b); err == nil {
		t.Fatal("expected a shape-mismatch error")
	}
}
