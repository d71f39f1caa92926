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
	"github.com/arborix/vkernel/contrib/parallel"
)

func TestDotBatch(t *testing.T) {
	queries := [][]float32{{1, 2, 3}, {1, 0, 0}}
	keys := [][]float32{{4, 5, 6}, {0, 1, 0}}

	got, err := DotBatch[float32, vkernel.Tag256](queries, keys)
	if err != nil {
		t.Fatalf("DotBatch: %v", err)
	}
	want := []float32{32, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDotBatchParallelMatchesSequential(t *testing.T) {
	queries := make([][]float64, 20)
	keys := make([][]float64, 20)
	for i := range queries {
		queries[i] = []float64{float64(i), 1, 2}
		keys[i] = []float64{1, float64(i), 3}
	}

	seq, err := DotBatch[float64, vkernel.NoneTag](queries, keys)
	if err != nil {
		t.Fatalf("DotBatch: %v", err)
	}

	pool := parallel.New(4)
	defer pool.Close()
	par, err := DotBatchParallel[float64, vkernel.NoneTag](pool, queries, keys)
	if err != nil {
		t.Fatalf("DotBatchParallel: %v", err)
	}

	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("seq[%d] = %v, par[%d] = %v", i, seq[i], i, par[i])
		}
	}
}
