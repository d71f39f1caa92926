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

import "math/cmplx"

// This file implements the five complex-only SIMD primitives named in
// spec.md's Design Notes (ConjugateSignMask, AlternatingSignMask,
// SwapAdjacentPairs, DuplicateEven, DuplicateOdd) and the complex Mul/Div
// formulas of §4.1, built on top of them.
//
// Each primitive operates on a deinterleaved (re, im) pair of float slices
// rather than on the interleaved Vec[complex64/128] directly — the same
// AoS-to-SoA split the teacher's hwy.LoadInterleaved2/StoreInterleaved2
// perform for paired data — so that the cross-term shuffle an ISA would
// do with a single instruction is visible here as ordinary slice ops.

// deinterleave splits a complex register into separate real and imaginary
// lane slices, mirroring hwy.LoadInterleaved2's AoS->SoA conversion.
func deinterleave[T Scalar](v Vec[T]) (re, im []float64) {
	n := len(v.data)
	re = make([]float64, n)
	im = make([]float64, n)
	for i, x := range v.data {
		switch c := any(x).(type) {
		case complex64:
			re[i] = float64(real(c))
			im[i] = float64(imag(c))
		case complex128:
			re[i] = real(c)
			im[i] = imag(c)
		}
	}
	return re, im
}

// interleave is the inverse of deinterleave, mirroring StoreInterleaved2.
func interleave[T Scalar](re, im []float64) Vec[T] {
	n := min(len(re), len(im))
	out := make([]T, n)
	var zero T
	for i := range n {
		switch any(zero).(type) {
		case complex64:
			out[i] = any(complex(float32(re[i]), float32(im[i]))).(T)
		case complex128:
			out[i] = any(complex(re[i], im[i])).(T)
		}
	}
	return Vec[T]{data: out}
}

// ConjugateSignMask returns the per-lane sign to apply to the imaginary
// component to conjugate a complex lane: {+1, -1, +1, -1, ...} would be
// the SIMD mask; here it is applied directly.
func ConjugateSignMask(im []float64) []float64 {
	out := make([]float64, len(im))
	for i, x := range im {
		out[i] = -x
	}
	return out
}

// AlternatingSignMask returns {+1, -1, +1, -1, ...} of length n, the mask
// fmaddsub/fmsubadd apply to alternating real lanes.
func AlternatingSignMask(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

// SwapAdjacentPairs swaps (re, im) -> (im, re) per lane; used by the
// complex multiply/divide cross-term formula below.
func SwapAdjacentPairs(re, im []float64) (swappedRe, swappedIm []float64) {
	return im, re
}

// DuplicateEven duplicates each lane's real component into both slots of
// a (re, re) pair — the "broadcast real" half of a complex multiply.
func DuplicateEven(re []float64) (a, b []float64) {
	return re, re
}

// DuplicateOdd duplicates each lane's imaginary component into both slots
// of an (im, im) pair — the "broadcast imag" half of a complex multiply.
func DuplicateOdd(im []float64) (a, b []float64) {
	return im, im
}

// mulComplex implements (ar+ai·i)(br+bi·i) = (ar·br-ai·bi) + (ar·bi+ai·br)·i
// using the deinterleave/duplicate/swap primitives above.
func mulComplex[T Scalar](a, b Vec[T]) Vec[T] {
	ar, ai := deinterleave(a)
	br, bi := deinterleave(b)
	n := min(len(ar), len(br))

	arDup, _ := DuplicateEven(ar[:n])
	aiDup, _ := DuplicateOdd(ai[:n])
	bSwapRe, bSwapIm := SwapAdjacentPairs(br[:n], bi[:n])

	outRe := make([]float64, n)
	outIm := make([]float64, n)
	for i := range n {
		outRe[i] = arDup[i]*br[i] - aiDup[i]*bi[i]
		// bSwapIm[i] == br[i], bSwapRe[i] == bi[i] (swapped), giving the
		// cross term ar*bi + ai*br without re-reading br/bi directly.
		outIm[i] = arDup[i]*bSwapRe[i] + aiDup[i]*bSwapIm[i]
	}
	return interleave[T](outRe, outIm)
}

// divComplex implements a/b = a * conj(b) / |b|^2.
func divComplex[T Scalar](a, b Vec[T]) Vec[T] {
	ar, ai := deinterleave(a)
	br, bi := deinterleave(b)
	n := min(len(ar), len(br))

	conjBi := ConjugateSignMask(bi[:n])
	outRe := make([]float64, n)
	outIm := make([]float64, n)
	for i := range n {
		denom := br[i]*br[i] + bi[i]*bi[i]
		if denom == 0 {
			outRe[i] = real(cmplx.Inf())
			outIm[i] = 0
			continue
		}
		// a * conj(b), with conj(b) = (br, conjBi)
		numRe := ar[i]*br[i] - ai[i]*conjBi[i]
		numIm := ar[i]*conjBi[i] + ai[i]*br[i]
		outRe[i] = numRe / denom
		outIm[i] = numIm / denom
	}
	return interleave[T](outRe, outIm)
}
