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

package parallel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/arborix/vkernel"
)

func TestParallelForCoversEveryIndex(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const n = 997
	var seen [n]atomic.Bool
	err := pool.ParallelFor(n, 7, func(start, end int) error {
		for i := start; i < end; i++ {
			seen[i].Store(true)
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Fatalf("index %d was never visited", i)
		}
	}
}

func TestParallelForAtomicCoversEveryIndex(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const n = 613
	var seen [n]atomic.Bool
	err := pool.ParallelForAtomic(n, 3, func(start, end int) error {
		for i := start; i < end; i++ {
			seen[i].Store(true)
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("ParallelForAtomic: %v", err)
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Fatalf("index %d was never visited", i)
		}
	}
}

func TestParallelForRejectsStepLessThanOne(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	err := pool.ParallelFor(10, 0, func(start, end int) error { return nil }, nil)
	var kerr *vkernel.Error
	if !errors.As(err, &kerr) || kerr.Kind != vkernel.InvalidArgument {
		t.Fatalf("got %v, want InvalidArgument", err)
	}
}

func TestParallelForCapturesFirstError(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	sentinel := errors.New("boom")
	err := pool.ParallelFor(20, 1, func(start, end int) error {
		if start == 5 {
			return sentinel
		}
		return nil
	}, nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestParallelForProgressReachesN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var lastCompleted atomic.Int64
	numChunks := (50 + 5 - 1) / 5
	err := pool.ParallelFor(50, 5, func(start, end int) error { return nil }, func(completed int) {
		for {
			cur := lastCompleted.Load()
			if int64(completed) <= cur {
				return
			}
			if lastCompleted.CompareAndSwap(cur, int64(completed)) {
				return
			}
		}
	})
	if err != nil {
		t.Fatalf("ParallelFor: %v", err)
	}
	if int(lastCompleted.Load()) != numChunks {
		t.Errorf("final progress = %d, want %d", lastCompleted.Load(), numChunks)
	}
}

func TestPoolCloseFallsBackToInline(t *testing.T) {
	pool := New(2)
	pool.Close()
	if !pool.Closed() {
		t.Fatal("Closed() = false after Close()")
	}

	var total atomic.Int64
	err := pool.ParallelFor(10, 1, func(start, end int) error {
		total.Add(int64(end - start))
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("ParallelFor on a closed pool: %v", err)
	}
	if total.Load() != 10 {
		t.Errorf("total = %d, want 10", total.Load())
	}
}
