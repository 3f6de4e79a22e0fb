// SPDX-License-Identifier: MIT

// Package array models the two execution states of a numeric vector — Eager
// (realized, in memory) and Lazy (a handle into an unevaluated deferred
// graph) — together with the elementwise/reduction algebra and the backend
// contract that eventually executes accumulated graphs.
//
// State machine per handle:
//
//	{Eager}            terminal: realized values, immutable
//	{Lazy} ──Realize──▶ new Eager (cached; the Lazy handle is not mutated)
//
// There is no Eager→Lazy transition: every operation in this package maps
// all-eager operands to an eager result and any-lazy operands to a new
// graph node. Deferred graphs are immutable DAGs; a backend memoizes per
// node, so shared upstream work is computed once no matter how many
// downstream handles realize.
//
// Dtypes are metadata over float64 storage; Promote documents the single
// widest-wins promotion policy. Ingestion (NewEager, Deferred) validates
// finiteness; mid-graph arithmetic follows IEEE-754.
//
// See the operator package for how forward/adjoint application rides on
// Apply, and the solver package for fully lazy iterative schemes.
package array
