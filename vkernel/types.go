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

import "unsafe"

// Real is the constraint for the two native floating-point scalar types
// the spec supports.
type Real interface {
	~float32 | ~float64
}

// Complex is the constraint for the two interleaved-complex scalar types.
type Complex interface {
	~complex64 | ~complex128
}

// Scalar is the full element-type constraint: T ∈ {f32, f64, complex64,
// complex128}, matching §3's element-type set exactly (no integers — this
// is a narrower constraint than the teacher's Lanes, since the spec's
// domain has no integer kernels).
type Scalar interface {
	Real | Complex
}

func elemSize[T Scalar]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Vec is a register-tile-sized run of T values. It plays the role of the
// teacher's hwy.Vec[T], but its length is always exactly LaneCount[T, S]()
// for whichever S the caller instantiated — there is no separate "max
// lanes" query because S fixes it at compile time.
type Vec[T Scalar] struct {
	data []T
}

// NumLanes returns the number of lanes held by v.
func (v Vec[T]) NumLanes() int { return len(v.data) }

// Data exposes the underlying lane slice. Intended for tests and for the
// family kernels in contrib/kernels, not for general call sites.
func (v Vec[T]) Data() []T { return v.data }

// Lane returns the value in lane i.
func (v Vec[T]) Lane(i int) T { return v.data[i] }

// NewVec wraps an existing slice as a Vec without copying. Intended for
// the family kernels in contrib/kernels that assemble a register's worth
// of results by hand (e.g. a recognized FMA pattern) and need to hand
// them back as a Vec.
func NewVec[T Scalar](data []T) Vec[T] {
	return Vec[T]{data: data}
}
