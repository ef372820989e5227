package decode_test

import (
	"reflect"
	"testing"

	schemable "github.com/schemable/schemable"
	"github.com/schemable/schemable/decode"
)

func TestJSONNumberNormalization(t *testing.T) {
	v, err := decode.JSON([]byte(`{"i": 3, "f": 1.5, "big": 9007199254740993}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"i": int64(3), "f": 1.5, "big": int64(9007199254740993)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("normalize mismatch\n got: %#v\nwant: %#v", v, want)
	}
}

func TestJSONNested(t *testing.T) {
	v, err := decode.JSON([]byte(`{"xs": [1, "a", null, true]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{"xs": []any{int64(1), "a", nil, true}}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("mismatch: %#v", v)
	}
}

func TestJSONInvalid(t *testing.T) {
	if _, err := decode.JSON([]byte(`{`)); err == nil {
		t.Fatalf("expected error for truncated document")
	}
}

func TestYAML(t *testing.T) {
	v, err := decode.YAML([]byte("a: 1\nb:\n  - x\n  - 2.5\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected string-keyed map, got %T", v)
	}
	if m["a"] != 1 {
		t.Fatalf("expected int 1, got %#v", m["a"])
	}
	if !reflect.DeepEqual(m["b"], []any{"x", 2.5}) {
		t.Fatalf("sequence mismatch: %#v", m["b"])
	}
}

func TestAutoByExtension(t *testing.T) {
	if _, err := decode.Auto("doc.yaml", []byte("a: 1")); err != nil {
		t.Fatalf("yaml by extension: %v", err)
	}
	if _, err := decode.Auto("doc.json", []byte(`{"a": 1}`)); err != nil {
		t.Fatalf("json by extension: %v", err)
	}
}

// Decoded values feed straight into the engine: JSON int64 numbers match
// schema literals written as Go ints.
func TestDecodedValuesMatchSchemaLiterals(t *testing.T) {
	v, err := decode.JSON([]byte(`{"version": 2, "name": "svc"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s := schemable.New(schemable.Map{
		"version": 2,
		"name":    schemable.StringType,
	})
	res, _ := s.Apply(v)
	if !res.Ok() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}
