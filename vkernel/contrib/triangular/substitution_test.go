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

package triangular

import (
	"errors"
	"math"
	"testing"

	"github.com/arborix/vkernel"
)

func TestForwardSubstitution(t *testing.T) {
	// L = [[2,0,0],[1,3,0],[4,2,5]], b = [4, 10, 32]
	// y0 = 4/2 = 2
	// y1 = (10 - 1*2)/3 = 8/3
	// y2 = (32 - 4*2 - 2*(8/3))/5 = (32-8-16/3)/5
	L, _ := vkernel.FromFlat([]float64{2, 0, 0, 1, 3, 0, 4, 2, 5}, 3, 3)
	b, _ := vkernel.FromFlat([]float64{4, 10, 32}, 3, 1)
	y := vkernel.NewView[float64](3, 1)

	if err := ForwardSubstitution[float64, vkernel.NoneTag](L, b, y, false); err != nil {
		t.Fatalf("ForwardSubstitution: %v", err)
	}

	want := []float64{2, 8.0 / 3.0, (32 - 8 - 2*(8.0/3.0)) / 5}
	got := y.Flat()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestForwardSubstitutionUnitDiag(t *testing.T) {
	L, _ := vkernel.FromFlat([]float64{1, 0, 2, 1}, 2, 2)
	b, _ := vkernel.FromFlat([]float64{3, 10}, 2, 1)
	y := vkernel.NewView[float64](2, 1)

	if err := ForwardSubstitution[float64, vkernel.NoneTag](L, b, y, true); err != nil {
		t.Fatalf("ForwardSubstitution: %v", err)
	}
	want := []float64{3, 10 - 2*3}
	got := y.Flat()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBackwardSubstitutionAfterForward(t *testing.T) {
	// Solve A x = b via A = L U with L unit-lower, U upper, then verify
	// U x = y composed with L y = b reproduces b when applied to A = L*U.
	L, _ := vkernel.FromFlat([]float64{1, 0, 2, 1}, 2, 2)
	U, _ := vkernel.FromFlat([]float64{4, 3, 0, 5}, 2, 2)
	b, _ := vkernel.FromFlat([]float64{4, 11}, 2, 1)

	y := vkernel.NewView[float64](2, 1)
	if err := ForwardSubstitution[float64, vkernel.NoneTag](L, b, y, true); err != nil {
		t.Fatalf("ForwardSubstitution: %v", err)
	}
	x := vkernel.NewView[float64](2, 1)
	if err := BackwardSubstitution[float64, vkernel.NoneTag](U, y, x, false); err != nil {
		t.Fatalf("BackwardSubstitution: %v", err)
	}

	// Reconstruct A = L*U and check A*x == b.
	a00 := L.At(0, 0)*U.At(0, 0) + L.At(0, 1)*U.At(1, 0)
	a01 := L.At(0, 0)*U.At(0, 1) + L.At(0, 1)*U.At(1, 1)
	a10 := L.At(1, 0)*U.At(0, 0) + L.At(1, 1)*U.At(1, 0)
	a11 := L.At(1, 0)*U.At(0, 1) + L.At(1, 1)*U.At(1, 1)
	xv := x.Flat()
	got0 := a00*xv[0] + a01*xv[1]
	got1 := a10*xv[0] + a11*xv[1]

	if math.Abs(got0-b.At(0, 0)) > 1e-9 || math.Abs(got1-b.At(1, 0)) > 1e-9 {
		t.Errorf("A*x = [%v, %v], want [%v, %v]", got0, got1, b.At(0, 0), b.At(1, 0))
	}
}

func TestForwardSubstitutionSingular(t *testing.T) {
	L, _ := vkernel.FromFlat([]float64{0, 0, 1, 1}, 2, 2)
	b, _ := vkernel.FromFlat([]float64{1, 1}, 2, 1)
	y := vkernel.NewView[float64](2, 1)

	err := ForwardSubstitution[float64, vkernel.NoneTag](L, b, y, false)
	if err == nil {
		t.Fatal("expected a Singular error for a zero diagonal pivot")
	}
	var kerr *vkernel.Error
	if !errors.As(err, &kerr) || kerr.Kind != vkernel.Singular {
		t.Fatalf("got %v, want Kind Singular", err)
	}
}

func TestForwardSubstitutionNotSquare(t *testing.T) {
	L := vkernel.NewView[float32](2, 3)
	b := vkernel.NewView[float32](2, 1)
	y := vkernel.NewView[float32](2, 1)
	if err := ForwardSubstitution[float32, vkernel.NoneTag](L, b, y, false); err == nil {
		t.Fatal("expected an error for a non-square L")
	}
}
