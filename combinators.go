package schemable

import "strings"

// ---- AllOf ----

type allNode struct {
	children []Node
}

// All builds a sequential composition: each spec is applied to the previous
// spec's output, so validation and transformation chain left to right. The
// first failure short-circuits.
func All(specs ...any) Node {
	children := make([]Node, len(specs))
	for i, s := range specs {
		n, err := compileSpec(s, IgnoreExtra)
		if err != nil {
			panic("schemable: All: " + err.Error())
		}
		children[i] = n
	}
	return &allNode{children: children}
}

func (n *allNode) match(st *state, v any) outcome {
	out := success(v)
	for _, c := range n.children {
		out = c.match(st, out.data)
		if out.failed() {
			return out
		}
	}
	return out
}

func (n *allNode) describe() string {
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.describe()
	}
	return "all(" + strings.Join(parts, ", ") + ")"
}

// ---- AnyOf ----

type anyNode struct {
	children []Node
}

// Any builds an alternative composition: each spec is tried against the
// original value and the first success wins. When every branch fails the
// report is a single composite message joining each branch's failure.
func Any(specs ...any) Node {
	children := make([]Node, len(specs))
	for i, s := range specs {
		n, err := compileSpec(s, IgnoreExtra)
		if err != nil {
			panic("schemable: Any: " + err.Error())
		}
		children[i] = n
	}
	return &anyNode{children: children}
}

// anyOver composes already-compiled nodes; the key resolver uses it when one
// data key is covered by several key-schemas.
func anyOver(children []Node) Node {
	return &anyNode{children: children}
}

func (n *anyNode) match(st *state, v any) outcome {
	if len(n.children) == 0 {
		return success(v)
	}
	var msgs []string
	for _, c := range n.children {
		out := c.match(st, v)
		if !out.failed() {
			return out
		}
		msg := out.err.String()
		if !containsString(msgs, msg) {
			msgs = append(msgs, msg)
		}
	}
	return failure(leafError("%s", strings.Join(msgs, " or ")))
}

func (n *anyNode) describe() string {
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.describe()
	}
	return "any(" + strings.Join(parts, ", ") + ")"
}

func containsString(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
