package schemable

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorTree mirrors the shape of the input that failed validation. A leaf
// carries a single message; a container maps keys (data keys, sequence
// indexes, or key-schema descriptors) to child trees. A container with no
// children is the canonical "no errors" report for mapping- and
// sequence-shaped matches.
type ErrorTree struct {
	msg      string
	children map[any]*ErrorTree
}

func leafError(format string, args ...any) *ErrorTree {
	return &ErrorTree{msg: fmt.Sprintf(format, args...)}
}

func containerError() *ErrorTree {
	return &ErrorTree{children: map[any]*ErrorTree{}}
}

// IsLeaf reports whether the tree is a single message rather than a per-key
// container.
func (e *ErrorTree) IsLeaf() bool { return e != nil && e.children == nil }

// Message returns the leaf message, or "" for containers and nil trees.
func (e *ErrorTree) Message() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Len returns the number of child errors in a container, 0 otherwise.
func (e *ErrorTree) Len() int {
	if e == nil {
		return 0
	}
	return len(e.children)
}

// Child returns the error recorded under key, matching literal-equal keys.
func (e *ErrorTree) Child(key any) *ErrorTree {
	if e == nil || e.children == nil {
		return nil
	}
	if c, ok := e.children[key]; ok {
		return c
	}
	for k, c := range e.children {
		if literalEqual(k, key) {
			return c
		}
	}
	return nil
}

// Keys returns container keys sorted by their rendered form for deterministic
// iteration and reporting.
func (e *ErrorTree) Keys() []any {
	if e == nil {
		return nil
	}
	keys := make([]any, 0, len(e.children))
	for k := range e.children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return formatKey(keys[i]) < formatKey(keys[j])
	})
	return keys
}

func (e *ErrorTree) set(key any, child *ErrorTree) {
	e.children[key] = child
}

// hasErrors reports whether the tree carries any failure. A nil tree and an
// empty container both count as success.
func (e *ErrorTree) hasErrors() bool {
	if e == nil {
		return false
	}
	if e.children == nil {
		return true
	}
	return len(e.children) > 0
}

// Empty reports the inverse of hasErrors; an empty container is Empty.
func (e *ErrorTree) Empty() bool { return !e.hasErrors() }

// String renders the tree deterministically: leaves as their message,
// containers as {key: child, ...} with keys sorted by rendered form.
func (e *ErrorTree) String() string {
	if e == nil {
		return ""
	}
	if e.children == nil {
		return e.msg
	}
	var b strings.Builder
	b.WriteString("{")
	for i, k := range e.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", formatKey(k), e.children[k].String())
	}
	b.WriteString("}")
	return b.String()
}

// Flatten projects the tree into path -> message pairs, with path segments
// joined by "/" ("" is the root path for a leaf root).
func (e *ErrorTree) Flatten() map[string]string {
	out := map[string]string{}
	if e == nil {
		return out
	}
	e.flattenInto("", out)
	return out
}

func (e *ErrorTree) flattenInto(prefix string, out map[string]string) {
	if e.children == nil {
		out[prefix] = e.msg
		return
	}
	for k, c := range e.children {
		c.flattenInto(prefix+"/"+formatKey(k), out)
	}
}

// Plain projects the tree into JSON-encodable data: leaf messages as strings,
// containers as map[string]any keyed by rendered key.
func (e *ErrorTree) Plain() any {
	if e == nil {
		return nil
	}
	if e.children == nil {
		return e.msg
	}
	out := make(map[string]any, len(e.children))
	for k, c := range e.children {
		out[formatKey(k)] = c.Plain()
	}
	return out
}

// formatKey renders a container key: error-report keys may be plain data keys
// (rendered like values), sequence indexes, or key-schema descriptors
// (rendered by the descriptor's own description).
func formatKey(k any) string {
	switch kk := k.(type) {
	case Kind:
		return kk.String()
	case Node:
		return kk.describe()
	case string:
		return fmt.Sprintf("%q", kk)
	}
	return fmt.Sprintf("%v", k)
}

// SchemaError is returned from strict evaluation when validation fails. It
// carries the same structured error content a non-strict call would have
// returned, plus the partial data and the original input.
type SchemaError struct {
	Message      string
	Errors       *ErrorTree
	Data         any
	OriginalData any
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Errors.String())
}
