package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	schemable "github.com/schemable/schemable"
	"github.com/schemable/schemable/decode"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `schemable CLI

Usage:
  schemable check -schema schema.json|yaml -data doc.json|yaml [-strict] [-extra allow|deny|ignore]

Schema documents use a literal convention:
  - the strings "string", "int", "float", "bool", "null", "any", "list", "map"
    are type matchers; prefix a string with "=" to match it literally
  - a key starting with "?" is optional ("?name")
  - everything else is matched as a literal value`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, dataPath, extra string
	var strict bool
	fs.StringVar(&schemaPath, "schema", "", "schema document path")
	fs.StringVar(&dataPath, "data", "", "data document path")
	fs.BoolVar(&strict, "strict", false, "fail without emitting partial data")
	fs.StringVar(&extra, "extra", "ignore", "extra-key policy: allow, deny, or ignore")
	_ = fs.Parse(args)
	if schemaPath == "" || dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	policy, err := parseExtra(extra)
	if err != nil {
		fatal(err)
	}
	schemaDoc, err := loadDoc(schemaPath)
	if err != nil {
		fatal(err)
	}
	dataDoc, err := loadDoc(dataPath)
	if err != nil {
		fatal(err)
	}

	spec, err := specFrom(schemaDoc)
	if err != nil {
		fatal(fmt.Errorf("%s: %w", schemaPath, err))
	}
	s, err := schemable.Compile(spec, schemable.Extra(policy))
	if err != nil {
		fatal(fmt.Errorf("%s: %w", schemaPath, err))
	}

	res, _ := s.Apply(dataDoc)
	if !res.Ok() {
		emit(os.Stderr, res.Errors.Plain())
		if !strict {
			emit(os.Stdout, plainValue(res.Data))
		}
		os.Exit(1)
	}
	emit(os.Stdout, plainValue(res.Data))
}

func loadDoc(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode.Auto(path, data)
}

func parseExtra(s string) (schemable.ExtraPolicy, error) {
	switch s {
	case "allow":
		return schemable.AllowExtra, nil
	case "deny":
		return schemable.DenyExtra, nil
	case "ignore":
		return schemable.IgnoreExtra, nil
	}
	return 0, fmt.Errorf("unknown extra policy %q", s)
}

var typeNames = map[string]schemable.Kind{
	"null":   schemable.NullType,
	"bool":   schemable.BoolType,
	"int":    schemable.IntType,
	"float":  schemable.FloatType,
	"string": schemable.StringType,
	"list":   schemable.ListType,
	"map":    schemable.MapType,
	"any":    schemable.AnyType,
}

// specFrom translates a decoded schema document into a spec literal.
func specFrom(doc any) (any, error) {
	switch d := doc.(type) {
	case map[string]any:
		m := schemable.Map{}
		for k, v := range d {
			key, err := keyFrom(k)
			if err != nil {
				return nil, err
			}
			spec, err := specFrom(v)
			if err != nil {
				return nil, err
			}
			m[key] = spec
		}
		return m, nil
	case []any:
		l := schemable.List{}
		for _, e := range d {
			spec, err := specFrom(e)
			if err != nil {
				return nil, err
			}
			l = append(l, spec)
		}
		return l, nil
	case string:
		return scalarSpec(d), nil
	}
	return doc, nil
}

func keyFrom(k string) (any, error) {
	if rest, ok := strings.CutPrefix(k, "?"); ok {
		if rest == "" {
			return nil, fmt.Errorf("empty optional key %q", k)
		}
		return schemable.Optional(scalarSpec(rest)), nil
	}
	return scalarSpec(k), nil
}

func scalarSpec(s string) any {
	if kind, ok := typeNames[s]; ok {
		return kind
	}
	return strings.TrimPrefix(s, "=")
}

// plainValue projects engine output into JSON-encodable data; non-string map
// keys are rendered as strings.
func plainValue(v any) any {
	switch vv := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[fmt.Sprintf("%v", k)] = plainValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = plainValue(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}

func emit(w *os.File, v any) {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Fprintln(w, string(b))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "schemable:", err)
	os.Exit(1)
}
