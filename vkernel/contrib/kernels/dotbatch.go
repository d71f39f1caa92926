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
	"github.com/arborix/vkernel"
	"github.com/arborix/vkernel/contrib/parallel"
)

// DotBatch computes, for each i, the dot product of queries[i] and
// keys[i], a call-through to FusedReduce[mul, add] over a pair of
// single-row views — the batch shape contrib/dot/batch.go's DotBatch
// exposes, built here on the fused mul/add fast path (FusedReduce's
// fmaDotAccumulate) rather than a dedicated loop per pair.
//
// All rows of queries and keys must share one common length n; mismatched
// or ragged batches are an InvalidArgument error rather than a partial
// result.
func DotBatch[T vkernel.Scalar, S vkernel.Tag](queries, keys [][]T) ([]T, error) {
	if err := requireVectorLen("DotBatch", len(keys), len(queries)); err != nil {
		return nil, err
	}
	n := len(queries)
	results := make([]T, n)
	for i := 0; i < n; i++ {
		q, k := queries[i], keys[i]
		if err := requireVectorLen("DotBatch", len(q), len(queries[0])); err != nil {
			return nil, err
		}
		if err := requireVectorLen("DotBatch", len(k), len(q)); err != nil {
			return nil, err
		}
		qView, err := vkernel.FromFlat(q, 1, len(q))
		if err != nil {
			return nil, err
		}
		kView, err := vkernel.FromFlat(k, 1, len(k))
		if err != nil {
			return nil, err
		}
		var zero T
		sum, err := FusedReduce[T, MulOp[T], AddReduceOp[T], S](qView, kView, zero)
		if err != nil {
			return nil, err
		}
		results[i] = sum
	}
	return results, nil
}

// DotBatchParallel is DotBatch's pool-driven form, fanning out one row
// pair per unit of work across pool's workers — the "parallel driver
// fanning out across row pairs" shape named for DotBatch in the spec.
func DotBatchParallel[T vkernel.Scalar, S vkernel.Tag](pool *parallel.Pool, queries, keys [][]T) ([]T, error) {
	if err := requireVectorLen("DotBatchParallel", len(keys), len(queries)); err != nil {
		return nil, err
	}
	n := len(queries)
	results := make([]T, n)
	err := pool.ParallelFor(n, 1, func(start, end int) error {
		for i := start; i < end; i++ {
			q, k := queries[i], keys[i]
			if err := requireVectorLen("DotBatchParallel", len(q), len(queries[0])); err != nil {
				return err
			}
			if err := requireVectorLen("DotBatchParallel", len(k), len(q)); err != nil {
				return err
			}
			qView, err := vkernel.FromFlat(q, 1, len(q))
			if err != nil {
				return err
			}
			kView, err := vkernel.FromFlat(k, 1, len(k))
			if err != nil {
				return err
			}
			var zero T
			sum, err := FusedReduce[T, MulOp[T], AddReduceOp[T], S](qView, kView, zero)
			if err != nil {
				return err
			}
			results[i] = sum
		}
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return results, nil
}
