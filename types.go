package schemable

// ExtraPolicy controls how mapping keys that no key-schema matches are
// handled.
type ExtraPolicy int

const (
	IgnoreExtra ExtraPolicy = iota // Drop unmatched keys silently.
	AllowExtra                     // Pass unmatched keys through to the output.
	DenyExtra                      // Report unmatched keys as errors.
)

// Map is a mapping schema spec literal. Keys are key-schema specs (literal
// values, kinds, Type sets, Check predicates, or Optional wrappers); values
// are value-schema specs.
type Map map[any]any

// List is a sequence schema spec literal. Each element of a sequence value is
// matched against the composition of the listed specs (All semantics when
// more than one is given).
type List []any

// Result is the outcome of a schema evaluation. Errors is nil on full success
// for scalar-rooted schemas, an empty container for mapping- or
// sequence-rooted schemas, and otherwise a tree mirroring the failing parts
// of the input. Data carries the validated and transformed output, which may
// be partial when Errors is non-empty.
type Result struct {
	Data   any
	Errors *ErrorTree
}

// Ok reports whether the evaluation succeeded with no errors.
func (r Result) Ok() bool { return !r.Errors.hasErrors() }
