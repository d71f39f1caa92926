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

// Package blocking implements §4.3/§4.4: the static per-family register-tile
// geometry and the compile-time-derived L1/L2/L3 block sizes built from it.
// The teacher's contrib/matmul/cache_params.go hand-tunes one CacheParams
// struct per ISA per family; here the tile geometry (Kernel) and the cache
// budget (CacheBudget) are split apart so Derive can compute Mc/Nc/Kc-style
// sizes for any family's (Rr, Rc), not just matmul's.
package blocking

// Kernel is the value-level register-tile descriptor of §4.3: rows and
// register-columns a family kernel keeps resident per pass.
type Kernel struct {
	Rr int // row registers: rows of scalars held per tile
	Rc int // column registers: count of full-width vector registers per row
}

// RegisterElements returns Rr*Rc, the raw register-tile cell count (before
// multiplying by lane width).
func (k Kernel) RegisterElements() int { return k.Rr * k.Rc }

// RowRegisters returns Rr.
func (k Kernel) RowRegisters() int { return k.Rr }

// ColRegisters returns Rc.
func (k Kernel) ColRegisters() int { return k.Rc }

// KernelRows returns the tile's row extent in scalar elements (== Rr).
func (k Kernel) KernelRows() int { return k.Rr }

// KernelCols returns the tile's column extent in scalar elements, Rc*L
// for lane count L.
func (k Kernel) KernelCols(lanes int) int { return k.Rc * lanes }

// Per-family kernel geometries, per spec.md §3's table.
var (
	Broadcast = Kernel{Rr: 4, Rc: 4}
	Reduce    = Kernel{Rr: 4, Rc: 4}
	Multiply  = Kernel{Rr: 4, Rc: 4}
	Unite     = Kernel{Rr: 4, Rc: 2}
	Transpose = Kernel{Rr: 4, Rc: 1}
	FusedUnion  = Kernel{Rr: 2, Rc: 4}
	FusedReduce = Kernel{Rr: 2, Rc: 8}
)
