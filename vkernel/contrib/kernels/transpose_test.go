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

func TestTransposeRectangular(t *testing.T) {
	src, _ := vkernel.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	dst := vkernel.NewView[float32](3, 2)
	if err := Transpose[float32, vkernel.Tag256](dst, src); err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	want := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for i := range want {
		for j := range want[i] {
			if dst.At(i, j) != want[i][j] {
				t.Errorf("dst[%d][%d] = %v, want %v", i, j, dst.At(i, j), want[i][j])
			}
		}
	}
}

func TestTransposeInvolution(t *testing.T) {
	src, _ := vkernel.FromFlat([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 3, 4)
	mid := vkernel.NewView[float64](4, 3)
	back := vkernel.NewView[float64](3, 4)

	if err := Transpose[float64, vkernel.NoneTag](mid, src); err != nil {
		t.Fatalf("Transpose (forward): %v", err)
	}
	if err := Transpose[float64, vkernel.NoneTag](back, mid); err != nil {
		t.Fatalf("Transpose (back): %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			if back.At(i, j) != src.At(i, j) {
				t.Errorf("back[%d][%d] = %v, want %v", i, j, back.At(i, j), src.At(i, j))
			}
		}
	}
}

func TestTransposeShapeMismatch(t *testing.T) {
	src, _ := vkernel.FromFlat([]float32{1, 2, 3, 4}, 2, 2)
	dst := vkernel.NewView[float32](3, 3)
	if err := Transpose[float32, vkernel.NoneTag](dst, src); err == nil {
		t.Fatal("expected a shape-mismatch error")
	}
}
