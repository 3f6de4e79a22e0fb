// SPDX-License-Identifier: MIT
// Package array: deferred-graph nodes.
//
// A Node records one pending operation applied to zero or more upstream
// nodes. Nodes are immutable once created: appending an operation always
// allocates a new node, never rewrites an existing one, so multiple
// downstream consumers may share an upstream node and a backend may
// memoize per-node results. Because every constructor only references
// pre-existing nodes, a graph is acyclic by construction.

package array

// OpCode enumerates the closed set of deferred operations: the primitive
// elementwise/reduction vocabulary composites and solvers are built from.
type OpCode uint8

const (
	// OpLeaf holds captured eager values (a graph source).
	OpLeaf OpCode = iota + 1

	// OpApply runs an operator kernel over one realized input.
	OpApply

	// OpAdd is elementwise addition of two inputs.
	OpAdd

	// OpSub is elementwise subtraction of two inputs.
	OpSub

	// OpDiv is elementwise division of two inputs.
	OpDiv

	// OpScale multiplies one input by a constant factor.
	OpScale

	// OpScaleBy multiplies a vector input by a length-1 scalar input.
	OpScaleBy

	// OpConcat concatenates the inputs in order.
	OpConcat

	// OpSlice extracts a contiguous segment of one input.
	OpSlice

	// OpDot reduces two inputs to their length-1 inner product.
	OpDot

	// OpNorm reduces one input to its length-1 Euclidean norm.
	OpNorm
)

// String returns a stable lower-case name for diagnostics and ExecError.
func (c OpCode) String() string {
	switch c {
	case OpLeaf:
		return "leaf"
	case OpApply:
		return "apply"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpDiv:
		return "div"
	case OpScale:
		return "scale"
	case OpScaleBy:
		return "scaleby"
	case OpConcat:
		return "concat"
	case OpSlice:
		return "slice"
	case OpDot:
		return "dot"
	case OpNorm:
		return "norm"
	default:
		return "unknown"
	}
}

// Kernel is the realized-data contract of a primitive operator: write the
// full result into dst (pre-allocated, zeroed) reading only from src.
// Kernels never see handles; the engine decides eager-vs-lazy around them.
type Kernel func(dst, src []float64)

// Node is one immutable deferred operation. Exactly the fields relevant to
// its OpCode are set; the rest stay zero. The executor memoizes val/done
// under mu, which is the only mutation a node ever sees.
type Node struct {
	code   OpCode
	inputs []*Node
	length int
	dtype  Dtype

	leaf   []float64 // OpLeaf: captured values (not aliased by callers)
	kernel Kernel    // OpApply
	label  string    // OpApply: operator name for execution diagnostics
	factor float64   // OpScale
	offset int       // OpSlice

	// memoized result, owned by the executing backend
	memo nodeMemo
}

// Code returns the node's operation kind.
func (n *Node) Code() OpCode { return n.code }

// Len returns the length of the node's (eventual) result.
func (n *Node) Len() int { return n.length }

// Dtype returns the dtype of the node's (eventual) result.
func (n *Node) Dtype() Dtype { return n.dtype }

// Inputs returns the upstream dependencies in evaluation order.
// The returned slice must not be mutated.
func (n *Node) Inputs() []*Node { return n.inputs }

// opName renders the node kind for diagnostics, including the operator
// label for apply nodes ("apply(Diagonal)").
func (n *Node) opName() string {
	if n.code == OpApply && n.label != "" {
		return "apply(" + n.label + ")"
	}

	return n.code.String()
}

// --------------------------- constructors ---------------------------
//
// All constructors are internal: handles are the public surface, and the
// ops/apply functions in this package are the only node producers. Each
// constructor copies nothing it does not own and computes exact result
// metadata up front (the Lazy-metadata invariant).

func newLeaf(values []float64, dtype Dtype) *Node {
	return &Node{code: OpLeaf, length: len(values), dtype: dtype, leaf: values}
}

func newApply(label string, kernel Kernel, length int, dtype Dtype, in *Node) *Node {
	return &Node{
		code:   OpApply,
		inputs: []*Node{in},
		length: length,
		dtype:  dtype,
		kernel: kernel,
		label:  label,
	}
}

func newBinary(code OpCode, a, b *Node, dtype Dtype) *Node {
	return &Node{code: code, inputs: []*Node{a, b}, length: a.length, dtype: dtype}
}

func newScale(in *Node, factor float64, dtype Dtype) *Node {
	return &Node{code: OpScale, inputs: []*Node{in}, length: in.length, dtype: dtype, factor: factor}
}

func newScaleBy(vec, scalar *Node, dtype Dtype) *Node {
	return &Node{code: OpScaleBy, inputs: []*Node{vec, scalar}, length: vec.length, dtype: dtype}
}

func newConcat(dtype Dtype, ins []*Node) *Node {
	total := 0
	for _, in := range ins {
		total += in.length
	}

	return &Node{code: OpConcat, inputs: ins, length: total, dtype: dtype}
}

func newSlice(in *Node, offset, length int) *Node {
	return &Node{code: OpSlice, inputs: []*Node{in}, length: length, dtype: in.dtype, offset: offset}
}

func newDot(a, b *Node, dtype Dtype) *Node {
	return &Node{code: OpDot, inputs: []*Node{a, b}, length: 1, dtype: dtype}
}

func newNorm(in *Node) *Node {
	return &Node{code: OpNorm, inputs: []*Node{in}, length: 1, dtype: in.dtype}
}
