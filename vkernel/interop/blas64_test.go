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

package interop

import (
	"testing"

	"gonum.org/v1/gonum/blas64"

	"github.com/arborix/vkernel"
)

func TestToBLAS64(t *testing.T) {
	v, _ := vkernel.FromFlat([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	g := ToBLAS64(v)
	if g.Rows != 2 || g.Cols != 3 || g.Stride != 3 {
		t.Fatalf("got shape %d x %d stride %d, want 2 x 3 stride 3", g.Rows, g.Cols, g.Stride)
	}
	for i, x := range v.Flat() {
		if g.Data[i] != x {
			t.Errorf("g.Data[%d] = %v, want %v", i, g.Data[i], x)
		}
	}
}

func TestFromBLAS64RoundTrip(t *testing.T) {
	g := blas64.General{Rows: 2, Cols: 2, Stride: 2, Data: []float64{1, 2, 3, 4}}
	v, err := FromBLAS64(g)
	if err != nil {
		t.Fatalf("FromBLAS64: %v", err)
	}
	if v.At(1, 0) != 3 {
		t.Errorf("v.At(1,0) = %v, want 3", v.At(1, 0))
	}
	back := ToBLAS64(v)
	for i := range g.Data {
		if back.Data[i] != g.Data[i] {
			t.Errorf("back.Data[%d] = %v, want %v", i, back.Data[i], g.Data[i])
		}
	}
}

func TestFromBLAS64PaddedStride(t *testing.T) {
	g := blas64.General{Rows: 2, Cols: 2, Stride: 4, Data: make([]float64, 8)}
	if _, err := FromBLAS64(g); err == nil {
		t.Fatal("expected a LayoutError for a padded stride")
	}
}
