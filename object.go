package schemable

import (
	"reflect"
	"sort"
	"strings"
)

// keySchema is one side of a mapping entry: a matchable key descriptor plus
// required/default configuration. Exactly one of lit, typ, pred is set.
type keySchema struct {
	lit  *literalNode
	typ  *typeNode
	pred *checkNode

	required    bool
	hasDefault  bool
	def         any
	defProducer func() any
}

// matches reports whether this key-schema accepts a concrete data key.
// Predicate errors count as a non-match.
func (k *keySchema) matches(dataKey any) bool {
	switch {
	case k.lit != nil:
		return literalEqual(k.lit.val, dataKey)
	case k.typ != nil:
		return k.typ.accepts(dataKey)
	default:
		return k.pred.keyMatch(dataKey)
	}
}

// cardinality orders non-value key-schemas for resolution: fewest accepted
// kinds first. Predicates have no kind set and sort after everything.
func (k *keySchema) cardinality() int {
	if k.typ == nil {
		return int(AnyType) + 2
	}
	for _, kk := range k.typ.kinds {
		if kk == AnyType {
			return int(AnyType) + 1
		}
	}
	return len(k.typ.kinds)
}

// descriptor is the error-tree key used when this key-schema itself must be
// named (missing required key reports).
func (k *keySchema) descriptor() any {
	switch {
	case k.lit != nil:
		return k.lit.val
	case k.typ != nil && len(k.typ.kinds) == 1:
		return k.typ.kinds[0]
	case k.typ != nil:
		return Node(k.typ)
	default:
		return Node(k.pred)
	}
}

func (k *keySchema) describe() string {
	switch {
	case k.lit != nil:
		return k.lit.describe()
	case k.typ != nil:
		return k.typ.describe()
	default:
		return k.pred.describe()
	}
}

func (k *keySchema) defaultValue() any {
	if k.defProducer != nil {
		return k.defProducer()
	}
	return k.def
}

// mapEntry pairs a key-schema with its value-schema. Source entries (Use or
// Select values) are resolved against the whole input mapping rather than a
// matched key's value, and never claim input keys.
type mapEntry struct {
	key    *keySchema
	value  Node
	source bool
}

// mapNode matches any Go map value. Key resolution follows the value-key
// precedence rule: a literal key-schema that equals a data key owns it
// exclusively; remaining keys are offered to type- and predicate-keyed
// schemas in ascending kind-set cardinality order, and a key covered by
// several of them is validated against the any-of composition of their
// value-schemas.
type mapNode struct {
	entries    []mapEntry
	valueKeyed []int // entry indexes with literal keys, excluding sources
	otherKeyed []int // remaining non-source indexes, cardinality order
	extra      ExtraPolicy
	badKeyList string // precomputed descriptor list for DenyExtra reports
}

func newMapNode(entries []mapEntry, extra ExtraPolicy) *mapNode {
	n := &mapNode{entries: entries, extra: extra}
	for i, e := range entries {
		if e.source {
			continue
		}
		if e.key.lit != nil {
			n.valueKeyed = append(n.valueKeyed, i)
		} else {
			n.otherKeyed = append(n.otherKeyed, i)
		}
	}
	sort.SliceStable(n.valueKeyed, func(a, b int) bool {
		return entries[n.valueKeyed[a]].key.describe() < entries[n.valueKeyed[b]].key.describe()
	})
	sort.SliceStable(n.otherKeyed, func(a, b int) bool {
		ka, kb := entries[n.otherKeyed[a]].key, entries[n.otherKeyed[b]].key
		if ka.cardinality() != kb.cardinality() {
			return ka.cardinality() < kb.cardinality()
		}
		return ka.describe() < kb.describe()
	})
	descs := make([]string, len(entries))
	for i, e := range entries {
		descs[i] = e.key.describe()
	}
	sort.Strings(descs)
	n.badKeyList = "[" + strings.Join(descs, ", ") + "]"
	return n
}

func (n *mapNode) match(st *state, v any) outcome {
	if kindOf(v) != MapType {
		return failure(leafError("type error, expected map but found %s", foundName(v)))
	}

	data := map[any]any{}
	errs := containerError()
	claimed := make([]bool, len(n.entries))
	childSt := st.withCtx(v)

	// Source entries first: they produce output under their own literal key
	// and shadow any input key with the same name.
	var sourceKeys []any
	for i, e := range n.entries {
		if !e.source {
			continue
		}
		claimed[i] = true
		sourceKeys = append(sourceKeys, e.key.lit.val)
		n.aggregate(e.key.lit.val, e.value.match(childSt, v), data, errs)
	}

	for _, dk := range inputKeys(v) {
		if containsKey(sourceKeys, dk) {
			continue
		}
		dv, _ := mapLookup(v, dk)

		owner := n.resolve(dk, claimed)
		if owner == nil {
			switch n.extra {
			case AllowExtra:
				data[dk] = dv
			case DenyExtra:
				errs.set(dk, leafError("bad key: not in %s", n.badKeyList))
			}
			continue
		}
		n.aggregate(dk, owner.match(childSt, dv), data, errs)
	}

	for i, e := range n.entries {
		if claimed[i] {
			continue
		}
		if e.key.required {
			errs.set(e.key.descriptor(), leafError("missing required key"))
			continue
		}
		if e.key.hasDefault && e.key.lit != nil {
			if _, ok := mapLookup(data, e.key.lit.val); !ok {
				data[e.key.lit.val] = e.key.defaultValue()
			}
		}
	}

	return outcome{data: data, hasData: true, err: errs}
}

// resolve picks the value-schema owning a data key, marking every matching
// key-schema as claimed. Literal key-schemas own their key exclusively; a key
// matched by several type/predicate key-schemas is owned by the any-of
// composition of their value-schemas.
func (n *mapNode) resolve(dataKey any, claimed []bool) Node {
	for _, i := range n.valueKeyed {
		if literalEqual(n.entries[i].key.lit.val, dataKey) {
			claimed[i] = true
			return n.entries[i].value
		}
	}
	var matched []Node
	for _, i := range n.otherKeyed {
		if n.entries[i].key.matches(dataKey) {
			claimed[i] = true
			if !containsNode(matched, n.entries[i].value) {
				matched = append(matched, n.entries[i].value)
			}
		}
	}
	switch len(matched) {
	case 0:
		return nil
	case 1:
		return matched[0]
	}
	return anyOver(matched)
}

// aggregate folds one child outcome into the container's data and errors.
// Data is included whenever the child produced any (the partial-load
// contract); the outcome of a failing strict nested schema carries no data,
// so nothing leaks here.
func (n *mapNode) aggregate(key any, out outcome, data map[any]any, errs *ErrorTree) {
	if out.failed() {
		errs.set(key, wrapChildError(out.err))
	}
	if out.hasData {
		data[key] = out.data
	}
}

func (n *mapNode) describe() string {
	parts := make([]string, len(n.entries))
	for i, e := range n.entries {
		parts[i] = e.key.describe() + ": " + e.value.describe()
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// inputKeys returns a map's keys sorted by rendered form so evaluation order,
// and therefore reporting, is deterministic.
func inputKeys(v any) []any {
	rv := reflect.ValueOf(v)
	keys := make([]any, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		keys = append(keys, it.Key().Interface())
	}
	sort.Slice(keys, func(i, j int) bool {
		return formatKey(keys[i]) < formatKey(keys[j])
	})
	return keys
}

func containsKey(keys []any, k any) bool {
	for _, x := range keys {
		if literalEqual(x, k) {
			return true
		}
	}
	return false
}

func containsNode(nodes []Node, n Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
