package schemable

import "reflect"

// seqNode matches any slice or array value, applying one element schema to
// every element. Failing elements are dropped from the output and reported
// under their original index; passing elements keep their relative order.
type seqNode struct {
	elem Node
}

func (n *seqNode) match(st *state, v any) outcome {
	if kindOf(v) != ListType {
		return failure(leafError("type error, expected list but found %s", foundName(v)))
	}
	rv := reflect.ValueOf(v)
	data := []any{}
	errs := containerError()
	for i := 0; i < rv.Len(); i++ {
		out := n.elem.match(&state{}, rv.Index(i).Interface())
		if out.failed() {
			errs.set(i, wrapChildError(out.err))
		}
		if out.hasData {
			data = append(data, out.data)
		}
	}
	res := outcome{data: data, hasData: true, err: errs}
	if len(data) == 0 && errs.hasErrors() {
		// Nothing survived; there is no partial result worth returning.
		res.data = nil
		res.hasData = false
	}
	return res
}

func (n *seqNode) describe() string {
	return "[" + n.elem.describe() + "]"
}

// wrapChildError prefixes a child's leaf failure with "bad value: " so a
// container report reads as a sentence; structured child errors are grafted
// in as-is since they already pinpoint the failure.
func wrapChildError(err *ErrorTree) *ErrorTree {
	if err.IsLeaf() {
		return leafError("bad value: %s", err.Message())
	}
	return err
}
