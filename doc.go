// Package linop builds linear operators — objects defining a forward map
// y = A·x and an adjoint map x = Aᵗ·y — that compose algebraically and
// evaluate either eagerly against in-memory vectors or lazily against a
// deferred computation graph executed by a backend on demand.
//
// 🚀 What is linop?
//
//	A small, algebraically dense library that brings together:
//		• Operator contract: Forward/Adjoint with strict shape & dtype checks
//		• Composite algebra: Scale, Sum, Chain, Transpose, VStack, HStack,
//		  BlockDiag, Power — all derived from algebraic identities
//		• Lazy evaluation: arrays are Eager or Lazy; applying an operator to
//		  a Lazy handle extends an immutable DAG instead of computing
//		• Iterative solvers: CG and CGLS written against the narrow operator
//		  contract, so a whole solve can stay lazy until the very end
//
// ✨ Why choose linop?
//
//   - Fail-fast guarantees – shape/dtype disagreements surface at
//     construction, never as silent broadcasts at call time
//   - Eagerness preservation – eager in, eager out; lazy in, lazy out,
//     at every operator boundary
//   - Deterministic – no global state; backends are explicit values
//   - gonum-backed – numeric kernels use gonum's floats and mat packages
//
// Everything is organized under three subpackages:
//
//	array/    — Eager/Lazy handles, the deferred graph, backends & Realize
//	operator/ — the Operator contract, primitives and composite algebra
//	solver/   — iterative least-squares solvers (CG, CGLS)
//
// Quick sketch:
//
//	A, _ := operator.FromDense(mtx, array.Float64)  // explicit matrix
//	D, _ := operator.Diagonal(d, array.Float64)     // primitive
//	Op, _ := operator.Chain(A, D)                   // A∘D, (AD)ᵗ = DᵗAᵗ
//	x, _ := array.Deferred(backend, data, array.Float64)
//	y, _ := Op.Forward(x)                           // no computation yet
//	out, _ := array.Materialize(y)                  // one backend execution
//
//	go get github.com/kmarenkova/linop
package linop
