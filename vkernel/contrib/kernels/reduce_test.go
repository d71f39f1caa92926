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
	"github.com/arborix/vkernel/contrib/parallel"
)

func TestReduceAdd(t *testing.T) {
	a, _ := vkernel.FromFlat([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	got, err := Reduce[float32, AddReduceOp[float32], vkernel.Tag256](a, 0)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 21 {
		t.Errorf("got %v, want 21", got)
	}
}

func TestReduceMul(t *testing.T) {
	a, _ := vkernel.FromFlat([]float64{1, 2, 3, 4}, 2, 2)
	got, err := Reduce[float64, MulReduceOp[float64], vkernel.NoneTag](a, 1)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if got != 24 {
		t.Errorf("got %v, want 24", got)
	}
}

func TestReduceParallelMatchesSequential(t *testing.T) {
	n := 97
	data := make([]float64, n*n)
	for i := range data {
		data[i] = float64(i%13) - 6
	}
	a, _ := vkernel.FromFlat(data, n, n)

	seq, err := Reduce[float64, AddReduceOp[float64], vkernel.Tag256](a, 0)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	pool := parallel.New(4)
	defer pool.Close()
	par, err := ReduceParallel[float64, AddReduceOp[float64], vkernel.Tag256](pool, a, 0)
	if err != nil {
		t.Fatalf("ReduceParallel: %v", err)
	}

	if math.Abs(seq-par) > 1e-9 {
		t.Errorf("sequential = %v, parallel = %v, want equal within tolerance", seq, par)
	}
}
