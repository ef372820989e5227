package schemable

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ---- TypeSet ----

type typeNode struct {
	kinds []Kind
}

// Type builds a type-set node matching values whose kind is any of the given
// kinds. Construction with no kinds or an unknown kind is a programmer error.
func Type(kinds ...Kind) Node {
	if len(kinds) == 0 {
		panic("schemable: Type requires at least one kind")
	}
	for _, k := range kinds {
		if k < NullType || k > AnyType {
			panic(fmt.Sprintf("schemable: Type given unknown kind %d", int(k)))
		}
	}
	return &typeNode{kinds: kinds}
}

func (n *typeNode) accepts(v any) bool {
	k := kindOf(v)
	for _, want := range n.kinds {
		if want == AnyType || want == k {
			return true
		}
	}
	return false
}

func (n *typeNode) match(st *state, v any) outcome {
	if !n.accepts(v) {
		return failure(leafError("type error, expected %s but found %s",
			expectedNames(n.kinds), foundName(v)))
	}
	return success(v)
}

func (n *typeNode) describe() string {
	if len(n.kinds) == 1 {
		return n.kinds[0].String()
	}
	names := make([]string, len(n.kinds))
	for i, k := range n.kinds {
		names[i] = k.String()
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return "(" + strings.Join(names, ", ") + ")"
}

// ---- Literal ----

type literalNode struct {
	val any
}

// Value builds a literal node matching only values deep-equal to v. Spec
// literals that are not recognized as any other shape compile to this
// implicitly; the constructor exists for forcing literal interpretation.
func Value(v any) Node {
	return &literalNode{val: v}
}

func (n *literalNode) match(st *state, v any) outcome {
	if !literalEqual(n.val, v) {
		return failure(leafError("value error, expected %s but found %s",
			formatValue(n.val), formatValue(v)))
	}
	return success(v)
}

func (n *literalNode) describe() string { return formatValue(n.val) }

// ---- Predicate ----

type checkNode struct {
	name string
	fn   func(any) (bool, error)
}

// Check builds a predicate node. The value passes unchanged when fn returns
// (true, nil); a false return or an error both reject, with the error's text
// folded into the reported message. The name appears in messages, so pick
// something a reader of the report will recognize.
func Check(name string, fn func(any) (bool, error)) Node {
	if fn == nil {
		panic("schemable: Check requires a non-nil predicate")
	}
	return &checkNode{name: name, fn: fn}
}

func (n *checkNode) match(st *state, v any) outcome {
	ok, err := n.fn(v)
	if err != nil {
		return failure(leafError("%s(%s) should evaluate to True (%v)",
			n.name, formatValue(v), err))
	}
	if !ok {
		return failure(leafError("%s(%s) should evaluate to True",
			n.name, formatValue(v)))
	}
	return success(v)
}

// keyMatch reports whether the predicate accepts a mapping key; predicate
// errors count as a non-match rather than a failure.
func (n *checkNode) keyMatch(key any) bool {
	ok, err := n.fn(key)
	return err == nil && ok
}

func (n *checkNode) describe() string { return n.name }

// ---- Transform ----

type asNode struct {
	name string
	fn   func(any) (any, error)
}

// As builds a transform node: on success the callable's return value replaces
// the matched value; an error rejects the value outright.
func As(name string, fn func(any) (any, error)) Node {
	if fn == nil {
		panic("schemable: As requires a non-nil transform")
	}
	return &asNode{name: name, fn: fn}
}

func (n *asNode) match(st *state, v any) outcome {
	out, err := n.fn(v)
	if err != nil {
		return failure(leafError("%s(%s) should not raise an exception: %v",
			n.name, formatValue(v), err))
	}
	return success(out)
}

func (n *asNode) describe() string { return n.name }

// ---- Select ----

type selectNode struct {
	key    any
	hasKey bool
	fn     func(any) (any, error)
}

// Select builds a node that reads from the enclosing mapping instead of
// validating the matched value in place. With a key, the sub-value under that
// key is selected (an absent key selects nothing: no data, no error, and fn
// is never invoked). With a nil key, fn receives the whole mapping. At the
// top level the input value itself is the enclosing mapping.
func Select(key any, fn func(any) (any, error)) Node {
	if key == nil && fn == nil {
		panic("schemable: Select requires a key or a callable")
	}
	return &selectNode{key: key, hasKey: key != nil, fn: fn}
}

func (n *selectNode) match(st *state, v any) outcome {
	ctx := v
	if st.hasCtx {
		ctx = st.ctx
	} else if kindOf(v) != MapType {
		return failure(leafError("type error, expected map but found %s", foundName(v)))
	}
	if !n.hasKey {
		return n.invoke(ctx)
	}
	val, ok := mapLookup(ctx, n.key)
	if !ok {
		return outcome{}
	}
	if n.fn == nil {
		return success(val)
	}
	return n.invoke(val)
}

func (n *selectNode) invoke(arg any) outcome {
	out, err := n.fn(arg)
	if err != nil {
		return failure(leafError("select(%s) should not raise an exception: %v",
			formatValue(arg), err))
	}
	return success(out)
}

func (n *selectNode) describe() string {
	if n.hasKey {
		return fmt.Sprintf("select(%s)", formatValue(n.key))
	}
	return "select()"
}

// ---- Use ----

type useNode struct {
	val      any
	producer func() any
}

// Use builds a node that ignores the input entirely and yields v, or, when v
// is a func() any, the producer's return value invoked fresh per evaluation.
func Use(v any) Node {
	if f, ok := v.(func() any); ok {
		return &useNode{producer: f}
	}
	return &useNode{val: v}
}

func (n *useNode) match(st *state, v any) outcome {
	if n.producer != nil {
		return success(n.producer())
	}
	return success(n.val)
}

func (n *useNode) describe() string {
	if n.producer != nil {
		return "use()"
	}
	return fmt.Sprintf("use(%s)", formatValue(n.val))
}

// mapLookup finds key in an arbitrary Go map using literal equality, so an
// int64 key from a decoder finds an int key written in a schema.
func mapLookup(m any, key any) (any, bool) {
	rm := reflect.ValueOf(m)
	if rm.Kind() != reflect.Map {
		return nil, false
	}
	it := rm.MapRange()
	for it.Next() {
		if literalEqual(it.Key().Interface(), key) {
			return it.Value().Interface(), true
		}
	}
	return nil, false
}
