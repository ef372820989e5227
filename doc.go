// Package schemable is a declarative schema-matching and data-transformation
// engine for decoded in-memory values.
//
// A schema is built once from a spec literal — kinds, literal values,
// mappings, sequences, predicates, combinators, transforms — and then applied
// to arbitrary values:
//
//	s := schemable.New(schemable.Map{
//		"name":                          schemable.StringType,
//		schemable.Optional("age", 0):    schemable.IntType,
//		schemable.StringType:            schemable.AnyType,
//	})
//	res, _ := s.Apply(doc)
//	if !res.Ok() {
//		fmt.Println(res.Errors)
//	}
//
// Evaluation produces a best-effort Result even under partial failure:
// Result.Data carries everything that validated, and Result.Errors is a tree
// mirroring the shape of the failing parts of the input. In strict mode
// (Strict option, or Eval with an override) a failed evaluation instead
// returns a *SchemaError carrying the same structured content.
//
// Design policy:
//   - The engine is pure and synchronous: no I/O, no serialization. Decoding
//     bytes into values lives in the decode package; the CLI lives under
//     cmd/schemable.
//   - Schemas are immutable after construction and safe for concurrent use.
//   - User-supplied predicates, transforms, and selectors are opaque: a
//     returned error is captured into the report, never propagated.
package schemable
