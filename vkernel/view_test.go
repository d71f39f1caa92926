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

import (
	"errors"
	"testing"
)

func TestFromFlatRoundTrip(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	v, err := FromFlat(data, 2, 3)
	if err != nil {
		t.Fatalf("FromFlat: %v", err)
	}
	if v.Rows() != 2 || v.Cols() != 3 {
		t.Fatalf("shape = %d x %d, want 2 x 3", v.Rows(), v.Cols())
	}
	if v.At(1, 2) != 6 {
		t.Errorf("At(1,2) = %v, want 6", v.At(1, 2))
	}
	flat := v.Flat()
	for i, x := range data {
		if flat[i] != x {
			t.Errorf("Flat()[%d] = %v, want %v", i, flat[i], x)
		}
	}
}

func TestFromFlatDimensionMismatch(t *testing.T) {
	_, err := FromFlat([]float32{1, 2, 3}, 2, 2)
	if err == nil {
		t.Fatal("expected an error for a data slice too short for m*n")
	}
	var kerr *Error
	if !errors.As(err, &kerr) || kerr.Kind != LayoutError {
		t.Fatalf("got %v, want LayoutError", err)
	}
}

func TestFromRowsContiguous(t *testing.T) {
	backing := make([]float64, 6)
	rows := [][]float64{backing[0:3], backing[3:6]}
	v, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	v.Set(0, 0, 9)
	if backing[0] != 9 {
		t.Error("Set did not write through to the backing slice")
	}
}

func TestFromRowsRagged(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5}}
	if _, err := FromRows(rows); err == nil {
		t.Fatal("expected an error for ragged rows")
	}
}

func TestNewViewSetGet(t *testing.T) {
	v := NewView[float32](3, 3)
	v.Set(1, 1, 2.5)
	if v.At(1, 1) != 2.5 {
		t.Errorf("At(1,1) = %v, want 2.5", v.At(1, 1))
	}
	if v.At(0, 0) != 0 {
		t.Errorf("At(0,0) = %v, want 0 (NewView should zero-initialize)", v.At(0, 0))
	}
}
