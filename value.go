package schemable

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind classifies a value for type matching. The set is closed: every decoded
// value maps to exactly one kind, and AnyType matches all of them.
type Kind int

const (
	NullType Kind = iota
	BoolType
	IntType
	FloatType
	StringType
	ListType
	MapType
	AnyType

	// opaqueType classifies values outside the closed set (structs, channels,
	// funcs, ...). It is never equal to an exported kind, so opaque values are
	// matched only by AnyType.
	opaqueType Kind = -1
)

func (k Kind) String() string {
	switch k {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case ListType:
		return "list"
	case MapType:
		return "map"
	case AnyType:
		return "any"
	}
	return "opaque"
}

// kindOf classifies an arbitrary decoded Go value.
func kindOf(v any) Kind {
	if v == nil {
		return NullType
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return BoolType
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return IntType
	case reflect.Float32, reflect.Float64:
		return FloatType
	case reflect.String:
		return StringType
	case reflect.Slice, reflect.Array:
		return ListType
	case reflect.Map:
		return MapType
	}
	return opaqueType
}

// foundName names a value's kind for error messages. Opaque values report
// their Go type so the message still points somewhere useful.
func foundName(v any) string {
	k := kindOf(v)
	if k == opaqueType {
		return reflect.TypeOf(v).String()
	}
	return k.String()
}

// expectedNames renders a kind set for a type-error message, sorted
// case-insensitively and joined with " or ".
func expectedNames(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return strings.Join(names, " or ")
}

// literalEqual reports deep equality between a literal schema value and an
// input value. Integer widths are widened before comparison so that e.g.
// int64(1) from a decoder equals the int(1) written in a schema; float widths
// likewise. Kinds are never crossed (1 != 1.0).
func literalEqual(a, b any) bool {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case IntType:
		ia, oka := asInt64(a)
		ib, okb := asInt64(b)
		if oka && okb {
			return ia == ib
		}
		// At least one side only fits uint64.
		ua, oka := asUint64(a)
		ub, okb := asUint64(b)
		return oka && okb && ua == ub
	case FloatType:
		return asFloat64(a) == asFloat64(b)
	}
	return reflect.DeepEqual(a, b)
}

func asInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u <= 1<<63-1 {
			return int64(u), true
		}
	}
	return 0, false
}

func asUint64(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i >= 0 {
			return uint64(i), true
		}
	}
	return 0, false
}

func asFloat64(v any) float64 {
	return reflect.ValueOf(v).Float()
}

// formatValue renders a value for error messages: strings quoted, everything
// else via %v.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
