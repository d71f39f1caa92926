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

import "math"

// This file implements the real-only FMA family of §4.1: FMAdd, FMSub,
// FNMAdd, FNMSub, FMAddSub, FMSubAdd. The sign-variant pair (FMAdd/FMSub)
// is grounded directly on ajroetker-go-highway/hwy/tile.go's
// fmaScalar/fmsScalar helpers (a*b+c / c-a*b); FNMAdd/FNMSub and the
// alternating-lane pair are the remaining four single-instruction FMA
// shapes named in §4.11's FMA recognition table.

func fmaLane[T Real](a, b, c T) T {
	switch v := any(a).(type) {
	case float32:
		bv, cv := any(b).(float32), any(c).(float32)
		return any(float32(math.FMA(float64(v), float64(bv), float64(cv)))).(T)
	case float64:
		bv, cv := any(b).(float64), any(c).(float64)
		return any(math.FMA(v, bv, cv)).(T)
	default:
		return c
	}
}

// FMAdd computes a*b + c lane-wise.
func FMAdd[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	out := make([]T, n)
	for i := range n {
		out[i] = fmaLane(a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: out}
}

// FMSub computes a*b - c lane-wise.
func FMSub[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	out := make([]T, n)
	for i := range n {
		out[i] = fmaLane(a.data[i], b.data[i], -c.data[i])
	}
	return Vec[T]{data: out}
}

// FNMAdd computes c - a*b lane-wise (negated multiply, then add).
func FNMAdd[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	out := make([]T, n)
	for i := range n {
		out[i] = fmaLane(-a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: out}
}

// FNMSub computes -(a*b) - c lane-wise.
func FNMSub[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	out := make([]T, n)
	for i := range n {
		out[i] = fmaLane(-a.data[i], b.data[i], -c.data[i])
	}
	return Vec[T]{data: out}
}

// FMAddSub computes a*b+c on even lanes and a*b-c on odd lanes, the
// vfmaddsub pattern, using AlternatingSignMask to pick the per-lane sign.
func FMAddSub[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	mask := AlternatingSignMask(n)
	out := make([]T, n)
	for i := range n {
		signed := c.data[i]
		if mask[i] < 0 {
			signed = -signed
		}
		out[i] = fmaLane(a.data[i], b.data[i], signed)
	}
	return Vec[T]{data: out}
}

// FMSubAdd computes a*b-c on even lanes and a*b+c on odd lanes, the
// inverse alternating pattern of FMAddSub.
func FMSubAdd[T Real](a, b, c Vec[T]) Vec[T] {
	n := min(len(a.data), min(len(b.data), len(c.data)))
	mask := AlternatingSignMask(n)
	out := make([]T, n)
	for i := range n {
		signed := c.data[i]
		if mask[i] > 0 {
			signed = -signed
		}
		out[i] = fmaLane(a.data[i], b.data[i], signed)
	}
	return Vec[T]{data: out}
}
