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

// Package vkernel provides the register-tile vector primitive set, matrix
// views, and boundary validation that the family kernels in
// contrib/kernels build on.
//
// Unlike a runtime-dispatching SIMD layer, the target vector width is a
// compile-time choice: callers instantiate generic kernel functions with
// one of the Tag types below, and the compiler monomorphizes the hot path
// for that width. There is no CPU-feature probe and no environment
// variable that changes behavior at runtime.
package vkernel

// Tag is a compile-time vector-width selector. The four tags correspond to
// the ISA targets of §3: NONE (scalar), W128, W256, W512.
type Tag interface {
	// Width returns the register width in bytes.
	Width() int

	// Name returns a human-readable target name.
	Name() string
}

// NoneTag selects the non-vectorized, one-lane-per-register path. It is
// the scalar fallback every blocked kernel also uses for edge tiles.
type NoneTag struct{}

func (NoneTag) Width() int    { return 8 }
func (NoneTag) Name() string  { return "none" }

// Tag128 selects 128-bit registers (SSE2, NEON).
type Tag128 struct{}

func (Tag128) Width() int   { return 16 }
func (Tag128) Name() string { return "w128" }

// Tag256 selects 256-bit registers (AVX2).
type Tag256 struct{}

func (Tag256) Width() int   { return 32 }
func (Tag256) Name() string { return "w256" }

// Tag512 selects 512-bit registers (AVX-512).
type Tag512 struct{}

func (Tag512) Width() int   { return 64 }
func (Tag512) Name() string { return "w512" }

// LaneCount returns L, the number of T elements that fit in one S register.
// For real T this is S.Width()/sizeof(T); for complex T, sizeof(T) already
// equals 2*sizeof(componentType) so the same formula yields the complex
// lane count the spec calls out separately. NoneTag is special-cased to a
// single lane regardless of sizeof(T): it names the non-vectorized scalar
// path (§3), not a real register of some byte width, so the generic
// division (and its Width()==8 value) does not apply to it — dividing
// would otherwise yield 0 lanes for any T wider than 8 bytes, including
// complex128.
func LaneCount[T Scalar, S Tag]() int {
	var tag S
	if _, isNone := any(tag).(NoneTag); isNone {
		return 1
	}
	return tag.Width() / elemSize[T]()
}
