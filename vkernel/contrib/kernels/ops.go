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

import "github.com/arborix/vkernel"

// BinaryOp closes the O ∈ {add, sub, mul, div} set of spec.md §4.9 at
// the Go type level: unite/fused_union/fused_reduce are parameterized by
// a zero-sized marker type implementing this interface, so passing an
// unsupported operator is a compile error, not a runtime branch on an op
// enum.
type BinaryOp[T vkernel.Scalar] interface {
	// ApplyVec computes the op across a full register, routed through
	// ops.go's complex-aware Add/Sub/Mul/Div so the five complex SIMD
	// primitives stay on the hot path for mul/div.
	ApplyVec(a, b vkernel.Vec[T]) vkernel.Vec[T]
	// ApplyScalar computes the op for the scalar edge tail.
	ApplyScalar(a, b T) T
}

type AddOp[T vkernel.Scalar] struct{}

func (AddOp[T]) ApplyVec(a, b vkernel.Vec[T]) vkernel.Vec[T] { return vkernel.Add(a, b) }
func (AddOp[T]) ApplyScalar(a, b T) T                        { return a + b }

type SubOp[T vkernel.Scalar] struct{}

func (SubOp[T]) ApplyVec(a, b vkernel.Vec[T]) vkernel.Vec[T] { return vkernel.Sub(a, b) }
func (SubOp[T]) ApplyScalar(a, b T) T                        { return a - b }

type MulOp[T vkernel.Scalar] struct{}

func (MulOp[T]) ApplyVec(a, b vkernel.Vec[T]) vkernel.Vec[T] { return vkernel.Mul(a, b) }
func (MulOp[T]) ApplyScalar(a, b T) T                        { return a * b }

type DivOp[T vkernel.Scalar] struct{}

func (DivOp[T]) ApplyVec(a, b vkernel.Vec[T]) vkernel.Vec[T] { return vkernel.Div(a, b) }
func (DivOp[T]) ApplyScalar(a, b T) T                        { return a / b }

// ReduceOp closes the R ∈ {add, mul} set of spec.md §4.10 at the type
// level — sub/div are simply not given a marker type, so instantiating
// Reduce[T, SubOp, S] does not compile, matching the §9 Design Notes
// instruction to reject them at the type level rather than at runtime.
type ReduceOp[T vkernel.Scalar] interface {
	// Combine folds one more element into the running accumulator.
	Combine(acc, x T) T
	// CombineVec folds a full register into the accumulator via
	// horizontal reduction, used by the tiled fast path.
	CombineVec(acc T, v vkernel.Vec[T]) T
}

type AddReduceOp[T vkernel.Scalar] struct{}

func (AddReduceOp[T]) Combine(acc, x T) T { return acc + x }
func (AddReduceOp[T]) CombineVec(acc T, v vkernel.Vec[T]) T {
	return acc + vkernel.HorizontalAdd(v)
}

type MulReduceOp[T vkernel.Scalar] struct{}

func (MulReduceOp[T]) Combine(acc, x T) T { return acc * x }
func (MulReduceOp[T]) CombineVec(acc T, v vkernel.Vec[T]) T {
	return acc * vkernel.HorizontalMul(v)
}

// FusionPolicy selects the order of operations in fused_union, per
// spec.md §4.11: a zero-sized marker type (UnionFirst or FusionFirst)
// rather than a runtime enum value, so the chosen order is resolved at
// compile time along with O1/O2, exactly as BinaryOp/ReduceOp are.
type FusionPolicy interface {
	unionFirst() bool
}

// UnionFirst computes O2(O1(A, B), C).
type UnionFirst struct{}

func (UnionFirst) unionFirst() bool { return true }

// FusionFirst computes O1(A, O2(B, C)).
type FusionFirst struct{}

func (FusionFirst) unionFirst() bool { return false }
