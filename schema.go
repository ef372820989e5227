package schemable

// Schema is a compiled, reusable schema: an immutable node tree plus the
// configured evaluation mode. A single Schema may be applied concurrently
// from multiple goroutines; every evaluation is an independent pass that owns
// its Result.
type Schema struct {
	node   Node
	strict bool
	extra  ExtraPolicy
}

// Option configures schema compilation.
type Option func(*Schema)

// Strict makes failed evaluations return a *SchemaError instead of a partial
// Result.
func Strict() Option {
	return func(s *Schema) { s.strict = true }
}

// Extra sets the policy for mapping keys no key-schema matches. The policy
// propagates to mapping specs nested directly in this schema's literal.
func Extra(p ExtraPolicy) Option {
	return func(s *Schema) { s.extra = p }
}

// Compile builds a schema from a spec literal. Malformed specs (invalid key
// schemas, Optional outside a key position, unknown kinds) are reported as
// errors; node constructors panic on their own misuse at construction time.
func Compile(spec any, opts ...Option) (*Schema, error) {
	s := &Schema{extra: IgnoreExtra}
	for _, o := range opts {
		o(s)
	}
	n, err := compileSpec(spec, s.extra)
	if err != nil {
		return nil, err
	}
	s.node = n
	return s, nil
}

// New builds a schema from a spec literal, panicking on malformed specs.
// Schema definitions are construction-time code, so this is the usual entry
// point.
func New(spec any, opts ...Option) *Schema {
	s, err := Compile(spec, opts...)
	if err != nil {
		panic("schemable: " + err.Error())
	}
	return s
}

// Apply evaluates the schema against a value using the configured mode. In
// non-strict mode err is always nil and the Result carries partial data plus
// the error tree; in strict mode a failed evaluation returns a *SchemaError
// carrying the same content.
func (s *Schema) Apply(v any) (Result, error) {
	return s.eval(v, s.strict)
}

// Eval is Apply with a per-call mode override. The override applies to this
// outermost call only; schemas nested inside the tree keep their own
// configured mode.
func (s *Schema) Eval(v any, strict bool) (Result, error) {
	return s.eval(v, strict)
}

func (s *Schema) eval(v any, strict bool) (Result, error) {
	out := s.node.match(&state{}, v)
	res := Result{Errors: out.err}
	if out.hasData {
		res.Data = out.data
	}
	if strict && out.failed() {
		return res, &SchemaError{
			Message:      "schema validation failed",
			Errors:       out.err,
			Data:         res.Data,
			OriginalData: v,
		}
	}
	return res, nil
}

// schemaNode embeds a compiled schema inside another schema's tree. The
// nested schema always evaluates with its own configured mode: when it is
// strict and fails, its partial data is withheld from the parent entirely.
type schemaNode struct {
	schema *Schema
}

func (n *schemaNode) match(st *state, v any) outcome {
	out := n.schema.node.match(&state{}, v)
	if n.schema.strict && out.failed() {
		return outcome{err: out.err}
	}
	return out
}

func (n *schemaNode) describe() string { return n.schema.node.describe() }
