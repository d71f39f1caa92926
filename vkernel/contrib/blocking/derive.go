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

package blocking

import (
	"unsafe"

	"github.com/arborix/vkernel"
)

// CacheBudget names the three cache levels and their target fill
// fractions, replacing the teacher's four hand-tuned CacheParams*()
// functions (AVX512/AVX2/NEON/Fallback) with the derivation spec.md
// §4.4 specifies. Byte sizes follow the teacher's documented defaults
// (contrib/matmul/cache_params.go's comments: 32KB L1d, 256KB-1MB L2,
// 4-30+MB L3).
type CacheBudget struct {
	L1, L2, L3          int     // bytes
	FillL1, FillL2, FillL3 float64 // target occupancy fraction, 0 < f <= 1
}

// DefaultCacheBudget returns the conservative budget spec.md §4.4 names:
// 32 KiB / 256 KiB / 8 MiB at 0.80 / 0.90 / 0.50 fill.
func DefaultCacheBudget() CacheBudget {
	return CacheBudget{
		L1: 32 * 1024, L2: 256 * 1024, L3: 8 * 1024 * 1024,
		FillL1: 0.80, FillL2: 0.90, FillL3: 0.50,
	}
}

// Blocking holds the three derived per-(T, S, kernel) block sizes, in
// elements, plus the geometry they were derived from.
type Blocking struct {
	B1, B2, B3 int
	Kernel     Kernel
	Lanes      int
}

// floorToMultiple rounds down n to the nearest positive multiple of m,
// clamped to at least m.
func floorToMultiple(n, m int) int {
	if m <= 0 {
		return 0
	}
	if n < m {
		return m
	}
	return (n / m) * m
}

// Derive computes {B1, B2, B3} for a (T, S, kernel) triple from a cache
// budget, following spec.md §4.4's formula exactly: B1 from the register
// tile's combined footprint and per-k-iteration streaming cost; B2 and
// B3 from a single L1 panel's footprint against the L2/L3 budgets.
func Derive[T vkernel.Scalar, S vkernel.Tag](k Kernel, budget CacheBudget) Blocking {
	var zero T
	s := int(unsafe.Sizeof(zero))
	lanes := vkernel.LaneCount[T, S]()

	kr := k.Rr
	kc := k.Rc * lanes

	e1 := int(float64(budget.L1) * budget.FillL1)
	tileBytes := kr * kc * s
	perIterBytes := (kr + kc) * s
	var b1Raw int
	if perIterBytes > 0 {
		b1Raw = (e1 - tileBytes) / perIterBytes
	}
	b1 := floorToMultiple(b1Raw, kr)

	e2 := int(float64(budget.L2) * budget.FillL2)
	var b2Raw int
	if b1*s > 0 {
		b2Raw = e2 / (b1 * s)
	}
	b2 := floorToMultiple(b2Raw, kr)

	e3 := int(float64(budget.L3) * budget.FillL3)
	var b3Raw int
	if b1*s > 0 {
		b3Raw = e3 / (b1 * s)
	}
	b3 := floorToMultiple(b3Raw, kc)

	return Blocking{B1: b1, B2: b2, B3: b3, Kernel: k, Lanes: lanes}
}
