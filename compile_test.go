package schemable_test

import (
	"testing"

	schemable "github.com/schemable/schemable"
)

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		spec any
	}{
		{"transform as mapping key", schemable.Map{schemable.As("int", func(v any) (any, error) { return v, nil }): "a"}},
		{"use as mapping key", schemable.Map{schemable.Use("a"): "a"}},
		{"select as mapping key", schemable.Map{schemable.Select("a", nil): "a"}},
		{"optional in value position", schemable.Map{"a": schemable.Optional("b")}},
		{"use under a type key", schemable.Map{schemable.StringType: schemable.Use("a")}},
		{"select under a type key", schemable.Map{schemable.StringType: schemable.Select("a", nil)}},
		{"unknown kind", schemable.Kind(42)},
		{"unknown kind in key", schemable.Map{schemable.Kind(42): schemable.IntType}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := schemable.Compile(tc.spec); err == nil {
				t.Fatalf("expected compile error for %#v", tc.spec)
			}
		})
	}
}

func TestNewPanicsOnMalformedSpec(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schemable.New(schemable.Map{schemable.Use("a"): "a"})
}

func TestConstructorPanics(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"empty type set", func() { schemable.Type() }},
		{"nil predicate", func() { schemable.Check("x", nil) }},
		{"nil transform", func() { schemable.As("x", nil) }},
		{"select with nothing", func() { schemable.Select(nil, nil) }},
		{"optional with two defaults", func() { schemable.Optional("x", 1, 2) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestCompileAcceptsPlainContainers(t *testing.T) {
	// Raw Go maps and slices compile like Map and List literals.
	s, err := schemable.Compile(map[string]any{"a": schemable.IntType})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res, _ := s.Apply(map[string]any{"a": 1})
	if !res.Ok() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	s, err = schemable.Compile([]any{schemable.IntType})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res, _ = s.Apply([]any{1, 2})
	if !res.Ok() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}
