package schemable

import (
	"fmt"
	"reflect"
)

// compileSpec normalizes a spec literal into its node variant. All shape
// dispatch lives here: maps become mapping nodes, slices become sequence
// nodes, kinds become type sets, compiled schemas nest, nodes pass through,
// and everything else is a literal.
func compileSpec(spec any, extra ExtraPolicy) (Node, error) {
	switch s := spec.(type) {
	case nil:
		return &literalNode{val: nil}, nil
	case *Schema:
		return &schemaNode{schema: s}, nil
	case *OptionalKey:
		return nil, fmt.Errorf("Optional is only valid as a mapping key")
	case Node:
		return s, nil
	case Kind:
		if s < NullType || s > AnyType {
			return nil, fmt.Errorf("unknown kind %d", int(s))
		}
		return &typeNode{kinds: []Kind{s}}, nil
	}
	switch kindOf(spec) {
	case MapType:
		return compileMap(reflect.ValueOf(spec), extra)
	case ListType:
		return compileList(reflect.ValueOf(spec), extra)
	}
	return &literalNode{val: spec}, nil
}

// compileList builds a sequence node. A multi-element list spec composes its
// elements sequentially, so every sequence element must satisfy all of them
// in order.
func compileList(rv reflect.Value, extra ExtraPolicy) (Node, error) {
	elems := make([]Node, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		n, err := compileSpec(rv.Index(i).Interface(), extra)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	if len(elems) == 1 {
		return &seqNode{elem: elems[0]}, nil
	}
	return &seqNode{elem: &allNode{children: elems}}, nil
}

func compileMap(rv reflect.Value, extra ExtraPolicy) (Node, error) {
	entries := make([]mapEntry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		e, err := compileEntry(it.Key().Interface(), it.Value().Interface(), extra)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return newMapNode(entries, extra), nil
}

func compileEntry(keySpec, valueSpec any, extra ExtraPolicy) (mapEntry, error) {
	ks, err := compileKey(keySpec)
	if err != nil {
		return mapEntry{}, err
	}
	vn, err := compileSpec(valueSpec, extra)
	if err != nil {
		return mapEntry{}, fmt.Errorf("value for key %s: %w", ks.describe(), err)
	}
	e := mapEntry{key: ks, value: vn}
	switch vn.(type) {
	case *useNode, *selectNode:
		if ks.lit == nil {
			return mapEntry{}, fmt.Errorf("Use and Select entries require a literal key, got %s", ks.describe())
		}
		e.source = true
	}
	return e, nil
}

// compileKey builds a key-schema from a mapping key spec: a literal value, a
// Kind, a Type set, a Check predicate, or any of those wrapped in Optional.
func compileKey(keySpec any) (*keySchema, error) {
	ks := &keySchema{required: true}
	inner := keySpec
	if o, ok := keySpec.(*OptionalKey); ok {
		ks.required = false
		ks.hasDefault = o.hasDefault
		ks.def = o.def
		ks.defProducer = o.producer
		inner = o.spec
	}
	switch s := inner.(type) {
	case nil:
		ks.lit = &literalNode{val: nil}
	case Kind:
		if s < NullType || s > AnyType {
			return nil, fmt.Errorf("unknown kind %d in key", int(s))
		}
		ks.typ = &typeNode{kinds: []Kind{s}}
	case *literalNode:
		ks.lit = s
	case *typeNode:
		ks.typ = s
	case *checkNode:
		ks.pred = s
	case Node:
		return nil, fmt.Errorf("key schema must be a literal, type, or predicate, got %s", s.describe())
	case *OptionalKey, *Schema:
		return nil, fmt.Errorf("key schema must be a literal, type, or predicate")
	default:
		ks.lit = &literalNode{val: inner}
	}
	return ks, nil
}
