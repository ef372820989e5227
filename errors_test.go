package schemable_test

import (
	"reflect"
	"testing"

	schemable "github.com/schemable/schemable"
)

func failingResult(t *testing.T) schemable.Result {
	t.Helper()
	s := schemable.New(schemable.Map{
		"a": schemable.IntType,
		"b": schemable.Map{"c": schemable.StringType},
	})
	res, _ := s.Apply(map[string]any{"a": "x", "b": map[string]any{"c": 1}})
	return res
}

func TestErrorTreeShape(t *testing.T) {
	res := failingResult(t)
	e := res.Errors
	if e.IsLeaf() {
		t.Fatalf("container root reported as leaf")
	}
	if e.Len() != 2 {
		t.Fatalf("expected 2 child errors, got %d", e.Len())
	}
	child := e.Child("a")
	if child == nil || !child.IsLeaf() {
		t.Fatalf("expected leaf error under a, got %v", child)
	}
	if child.Message() != "bad value: type error, expected int but found string" {
		t.Fatalf("unexpected message %q", child.Message())
	}
	nested := e.Child("b")
	if nested == nil || nested.IsLeaf() || nested.Child("c") == nil {
		t.Fatalf("nested error did not mirror input shape: %v", nested)
	}
}

func TestErrorTreeRendering(t *testing.T) {
	res := failingResult(t)
	want := `{"a": bad value: type error, expected int but found string, "b": {"c": bad value: type error, expected string but found int}}`
	if got := res.Errors.String(); got != want {
		t.Fatalf("rendering mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestErrorTreeFlatten(t *testing.T) {
	res := failingResult(t)
	want := map[string]string{
		`/"a"`:      "bad value: type error, expected int but found string",
		`/"b"/"c"`:  "bad value: type error, expected string but found int",
	}
	if got := res.Errors.Flatten(); !reflect.DeepEqual(got, want) {
		t.Fatalf("flatten mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestErrorTreeKeysSorted(t *testing.T) {
	s := schemable.New(schemable.Map{
		"b": schemable.IntType,
		"a": schemable.IntType,
		1:   schemable.IntType,
	})
	res, _ := s.Apply(map[any]any{})
	keys := res.Errors.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	// Sorted by rendered form: `"a"`, `"b"`, `1`.
	if !reflect.DeepEqual(keys, []any{"a", "b", 1}) {
		t.Fatalf("keys not sorted deterministically: %#v", keys)
	}
}

func TestEmptyContainerErrorsOnSuccess(t *testing.T) {
	mapRes, _ := schemable.New(schemable.Map{"a": schemable.IntType}).Apply(map[string]any{"a": 1})
	if mapRes.Errors == nil || !mapRes.Errors.Empty() || mapRes.Errors.IsLeaf() {
		t.Fatalf("container root should report an empty container on success, got %#v", mapRes.Errors)
	}
	seqRes, _ := schemable.New(schemable.List{schemable.IntType}).Apply([]any{1})
	if seqRes.Errors == nil || !seqRes.Errors.Empty() {
		t.Fatalf("sequence root should report an empty container on success")
	}
	leafRes, _ := schemable.New(schemable.IntType).Apply(1)
	if leafRes.Errors != nil {
		t.Fatalf("leaf root should report nil errors on success, got %v", leafRes.Errors)
	}
}
