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

// This file implements the width-polymorphic vector primitive set V of
// spec.md §4.1, for both real and interleaved-complex element types. There
// is only one implementation (no per-ISA specialization) because S affects
// only lane count, not the arithmetic performed per lane; the compiler
// monomorphizes a distinct copy of every function per (T, S) instantiation
// regardless.
package vkernel

import "unsafe"

// Zero returns an all-zero register for (T, S).
func Zero[T Scalar, S Tag]() Vec[T] {
	return Vec[T]{data: make([]T, LaneCount[T, S]())}
}

// Splat broadcasts x to every lane of a (T, S) register. For complex T this
// broadcasts the (re, im) pair across all lanes, matching §4.1.
func Splat[T Scalar, S Tag](x T) Vec[T] {
	n := LaneCount[T, S]()
	data := make([]T, n)
	for i := range data {
		data[i] = x
	}
	return Vec[T]{data: data}
}

// isAligned reports whether src's backing address is a multiple of the
// tag's register width. Pure-Go slice access never faults on misalignment,
// so this only selects which named path (Load vs LoadU) runs — both are
// behaviorally identical here, matching §4.1's "alignment is selected at
// call time" contract without requiring a real unaligned-load instruction.
func isAligned[T Scalar, S Tag](src []T) bool {
	if len(src) == 0 {
		return true
	}
	var tag S
	addr := uintptr(unsafe.Pointer(&src[0]))
	return addr%uintptr(tag.Width()) == 0
}

// Load fills one (T, S) register from contiguous lanes starting at src[0],
// selecting the aligned or unaligned path by inspecting src's address.
// Caller guarantees len(src) >= LaneCount[T, S]().
func Load[T Scalar, S Tag](src []T) Vec[T] {
	if isAligned[T, S](src) {
		return loadAligned[T, S](src)
	}
	return LoadU[T, S](src)
}

func loadAligned[T Scalar, S Tag](src []T) Vec[T] {
	n := LaneCount[T, S]()
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// LoadU loads ignoring alignment (the "…u" path of §4.1).
func LoadU[T Scalar, S Tag](src []T) Vec[T] {
	n := LaneCount[T, S]()
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes v to dst, selecting the aligned or unaligned path.
func Store[T Scalar, S Tag](v Vec[T], dst []T) {
	if isAligned[T, S](dst) {
		storeAligned(v, dst)
		return
	}
	StoreU(v, dst)
}

func storeAligned[T Scalar](v Vec[T], dst []T) {
	copy(dst[:len(v.data)], v.data)
}

// StoreU stores ignoring alignment.
func StoreU[T Scalar](v Vec[T], dst []T) {
	copy(dst[:len(v.data)], v.data)
}

// Add performs lane-wise addition. Go's native + already implements the
// correct complex arithmetic, so Add/Sub need no type switch (unlike Mul
// and Div, which decompose explicitly — see the comment on Mul).
func Add[T Scalar](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] + b.data[i]
	}
	return Vec[T]{data: out}
}

// Sub performs lane-wise subtraction.
func Sub[T Scalar](a, b Vec[T]) Vec[T] {
	n := min(len(a.data), len(b.data))
	out := make([]T, n)
	for i := range n {
		out[i] = a.data[i] - b.data[i]
	}
	return Vec[T]{data: out}
}

// Mul performs lane-wise multiplication. For complex T this follows
// §4.1's cross-term formula explicitly (ar*br - ai*bi, ar*bi + ai*br)
// via the deinterleave/recombine helpers in complex.go, rather than
// relying on Go's native complex multiply, so the five named complex
// SIMD primitives from the Design Notes have somewhere real to live.
func Mul[T Scalar](a, b Vec[T]) Vec[T] {
	var zero T
	switch any(zero).(type) {
	case complex64, complex128:
		return mulComplex(a, b)
	default:
		n := min(len(a.data), len(b.data))
		out := make([]T, n)
		for i := range n {
			out[i] = a.data[i] * b.data[i]
		}
		return Vec[T]{data: out}
	}
}

// Div performs lane-wise division. For complex T this multiplies by the
// conjugate and divides by |b|² per §4.1.
func Div[T Scalar](a, b Vec[T]) Vec[T] {
	var zero T
	switch any(zero).(type) {
	case complex64, complex128:
		return divComplex(a, b)
	default:
		n := min(len(a.data), len(b.data))
		out := make([]T, n)
		for i := range n {
			out[i] = a.data[i] / b.data[i]
		}
		return Vec[T]{data: out}
	}
}

// HorizontalAdd collapses all lanes of v to a single scalar by +.
func HorizontalAdd[T Scalar](v Vec[T]) T {
	var acc T
	for _, x := range v.data {
		acc += x
	}
	return acc
}

// HorizontalMul collapses all lanes of v to a single scalar by *.
func HorizontalMul[T Scalar](v Vec[T]) T {
	if len(v.data) == 0 {
		var zero T
		return zero
	}
	acc := v.data[0]
	for _, x := range v.data[1:] {
		acc *= x
	}
	return acc
}
