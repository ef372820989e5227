package schemable

// Node is a compiled schema building block. Nodes are immutable after
// construction and safe for concurrent matching.
type Node interface {
	// match applies the node to a value and reports the outcome.
	match(st *state, v any) outcome
	// describe renders the node for error messages and key descriptors.
	describe() string
}

// state carries per-evaluation matching context. ctx is the enclosing mapping
// value while matching a mapping's value-schemas, which is what Select nodes
// read from.
type state struct {
	ctx    any
	hasCtx bool
}

// withCtx derives a state whose enclosing-mapping context is v.
func (st *state) withCtx(v any) *state {
	return &state{ctx: v, hasCtx: true}
}

// outcome is the result of matching one node against one value. hasData
// distinguishes "produced no data" from "produced nil": nil is a legal value.
// err is nil for successful leaf matches and an empty container for
// successful mapping/sequence matches.
type outcome struct {
	data    any
	hasData bool
	err     *ErrorTree
}

func (o outcome) failed() bool { return o.err.hasErrors() }

func success(data any) outcome {
	return outcome{data: data, hasData: true}
}

func failure(err *ErrorTree) outcome {
	return outcome{err: err}
}
