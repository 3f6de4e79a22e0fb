// SPDX-License-Identifier: MIT
// Package array: the backend contract and the in-process reference executor.
//
// The core treats a backend as an opaque, blocking executor: Execute walks
// the graph reachable from one node, in dependency order, and returns the
// node's realized values. Because nodes are immutable and form a DAG, a
// backend is free to run independent subgraphs in any order or even
// concurrently; dependency order is the only constraint the core imposes.

package array

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Backend executes deferred graphs. Implementations may be distributed;
// Local is the deterministic in-process reference used in tests and as the
// default for single-node work. Execute blocks until the result is fully
// computed or evaluation fails.
type Backend interface {
	Execute(n *Node) ([]float64, error)
}

// nodeMemo caches a node's computed values. A node is computed at most
// once per process: shared downstream consumers and repeated Realize calls
// all observe the first result. The guard makes cross-goroutine sharing of
// read-only handles safe; the algebra itself stays single-threaded.
type nodeMemo struct {
	mu   sync.Mutex
	val  []float64
	done bool
}

// Local is the in-process reference backend: a post-order DAG walk with
// per-node memoization, numeric kernels via gonum. It holds no state of
// its own, so one value may serve any number of graphs.
type Local struct{}

// NewLocal returns the in-process reference backend.
func NewLocal() *Local { return &Local{} }

// Execute evaluates the graph reachable from n and returns n's values.
// The returned slice is the memoized result: callers must not mutate it
// (handle-level Realize copies before exposing).
func (b *Local) Execute(n *Node) ([]float64, error) {
	if n == nil {
		return nil, ErrNilNode
	}

	return eval(n)
}

// eval computes one node, memoizing under the node's guard. Inputs are
// evaluated first (recursively); lock order follows graph edges, which are
// acyclic by construction, so no deadlock is possible.
func eval(n *Node) ([]float64, error) {
	n.memo.mu.Lock()
	defer n.memo.mu.Unlock()
	if n.memo.done {
		return n.memo.val, nil
	}

	ins := make([][]float64, len(n.inputs))
	for i, in := range n.inputs {
		v, err := eval(in)
		if err != nil {
			return nil, err
		}
		ins[i] = v
	}

	out, err := evalNode(n, ins)
	if err != nil {
		return nil, &ExecError{Op: n.opName(), Err: err}
	}
	n.memo.val = out
	n.memo.done = true

	return out, nil
}

// evalNode dispatches one node over already-computed inputs.
func evalNode(n *Node, ins [][]float64) ([]float64, error) {
	switch n.code {
	case OpLeaf:
		return n.leaf, nil

	case OpApply:
		out := make([]float64, n.length)
		n.kernel(out, ins[0])

		return out, nil

	case OpAdd:
		out := make([]float64, n.length)
		floats.AddTo(out, ins[0], ins[1])

		return out, nil

	case OpSub:
		out := make([]float64, n.length)
		floats.SubTo(out, ins[0], ins[1])

		return out, nil

	case OpDiv:
		out := make([]float64, n.length)
		floats.DivTo(out, ins[0], ins[1])

		return out, nil

	case OpScale:
		out := make([]float64, n.length)
		floats.ScaleTo(out, n.factor, ins[0])

		return out, nil

	case OpScaleBy:
		out := make([]float64, n.length)
		floats.ScaleTo(out, ins[1][0], ins[0])

		return out, nil

	case OpConcat:
		out := make([]float64, 0, n.length)
		for _, in := range ins {
			out = append(out, in...)
		}

		return out, nil

	case OpSlice:
		out := make([]float64, n.length)
		copy(out, ins[0][n.offset:n.offset+n.length])

		return out, nil

	case OpDot:
		return []float64{floats.Dot(ins[0], ins[1])}, nil

	case OpNorm:
		return []float64{floats.Norm(ins[0], 2)}, nil

	default:
		return nil, fmt.Errorf("opcode %d: %w", n.code, ErrUnsupported)
	}
}
