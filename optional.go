package schemable

// OptionalKey marks a mapping key-schema as non-required, optionally carrying
// a default contributed to the output when no input key matches. A func() any
// default is a producer invoked fresh per evaluation, so mutable defaults are
// never shared between results.
type OptionalKey struct {
	spec       any
	def        any
	producer   func() any
	hasDefault bool
}

// Optional wraps a mapping key spec (a literal value, a Kind, or a Type set)
// as optional. At most one default may be given.
func Optional(keySpec any, def ...any) *OptionalKey {
	o := &OptionalKey{spec: keySpec}
	switch len(def) {
	case 0:
	case 1:
		o.hasDefault = true
		if f, ok := def[0].(func() any); ok {
			o.producer = f
		} else {
			o.def = def[0]
		}
	default:
		panic("schemable: Optional takes at most one default")
	}
	return o
}

func (o *OptionalKey) defaultValue() any {
	if o.producer != nil {
		return o.producer()
	}
	return o.def
}
