// SPDX-License-Identifier: MIT

// Package operator defines the linear-operator contract and the composite
// algebra built on it.
//
// Every operator — primitive or composite — implements the same four-method
// contract: Forward (y = A·x), Adjoint (x = Aᵗ·y), Shape and Dtype.
// Primitives come from New, the factory contract for concrete operators:
// shape, dtype and two kernels over realized data. Composites derive their
// maps purely from algebraic identities over owned children:
//
//	Scale(A, c)        c·A           adjoint: conj(c)·Aᵗ (real ⇒ c·Aᵗ)
//	Sum(A, B, …)       A + B + …     adjoint: Aᵗ + Bᵗ + …
//	Chain(A, B, …)     A·B·…         adjoint: …ᵗ·Bᵗ·Aᵗ (order reversed)
//	Transpose(A)       Aᵗ            zero-copy relabeling
//	VStack(A₁…Aₖ)      stacked outputs, shared input size
//	HStack(A₁…Aₖ)      stacked inputs, shared output size
//	BlockDiag(A₁…Aₖ)   independent per-block maps, no cross terms
//	Power(A, p)        Aᵖ            square A, p ≥ 0
//
// Shape disagreements among children surface at construction — never at
// first use — naming the offending pair of children and dimensions.
// Call-time inputs of the wrong length fail with ErrShapeMismatch naming
// expected vs actual.
//
// Building a composite never computes anything. Applying one to an Eager
// handle computes immediately; applying to a Lazy handle extends its
// deferred graph, so arbitrarily deep trees collapse into a single graph
// realized once. Operators are immutable after construction and safe to
// share across goroutines and solver instances.
package operator
