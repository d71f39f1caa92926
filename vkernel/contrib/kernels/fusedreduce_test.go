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
	"math"
	"testing"

	"github.com/arborix/vkernel"
)

func TestFusedReduceMulAddIsDotProduct(t *testing.T) {
	a, _ := vkernel.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	b, _ := vkernel.FromFlat([]float32{6, 5, 4, 3, 2, 1}, 2, 3)

	got, err := FusedReduce[float32, MulOp[float32], AddReduceOp[float32], vkernel.Tag256](a, b, 0)
	if err != nil {
		t.Fatalf("FusedReduce: %v", err)
	}
	var want float32
	aFlat, bFlat := a.Flat(), b.Flat()
	for i := range aFlat {
		want += aFlat[i] * bFlat[i]
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFusedReduceAgreesWithUniteThenReduce(t *testing.T) {
	a, _ := vkernel.FromFlat([]float64{1.5, -2, 3, 4.25}, 2, 2)
	b, _ := vkernel.FromFlat([]float64{2, 3, -1, 0.5}, 2, 2)

	fused, err := FusedReduce[float64, MulOp[float64], AddReduceOp[float64], vkernel.NoneTag](a, b, 0)
	if err != nil {
		t.Fatalf("FusedReduce: %v", err)
	}

	prod := vkernel.NewView[float64](2, 2)
	if err := UniteMatrix[float64, MulOp[float64], vkernel.NoneTag](prod, a, b); err != nil {
		t.Fatalf("UniteMatrix: %v", err)
	}
	composed, err := Reduce[float64, AddReduceOp[float64], vkernel.NoneTag](prod, 0)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	if math.Abs(fused-composed) > 1e-12 {
		t.Errorf("fused = %v, composed = %v, want equal within tolerance", fused, composed)
	}
}

func TestFusedReduceShapeMismatch(t *testing.T) {
	a := vkernel.NewView[float32](2, 2)
	b := vkernel.NewView[float32](2, 3)
	if _, err := FusedReduce[float32, MulOp[float32], AddReduceOp[float32], vkernel.NoneTag](a, b, 0); err == nil {
		t.Fatal("expected a shape-mismatch error")
	}
}
