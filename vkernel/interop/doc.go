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

package interop

// This package deliberately does not import gonum.org/v1/gonum/lapack64.
// lapack64.Getrf produces a pivoted LU factorization; the natural next
// step for a caller holding one is to feed its L and U factors into
// vkernel/contrib/triangular's ForwardSubstitution/BackwardSubstitution,
// and its permutation into a caller-applied row swap before calling
// vkernel/contrib/kernels.SetIdentity to seed an inverse computation.
// Composing a full LU-based solve or inverse is out of scope (the
// composite, not the kernel contracts it consumes, is excluded) so this
// package documents the seam without importing lapack64 itself.
