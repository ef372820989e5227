// Package decode converts JSON and YAML documents into the plain decoded
// values the schemable engine operates on. The engine itself never touches
// bytes; this package is the canonical boundary for callers and the CLI.
//
// Numbers are normalized so schema literals written as Go ints match decoded
// input: integral JSON numbers become int64, everything else float64.
package decode

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// JSON decodes a single JSON document into engine values.
func JSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return normalize(v), nil
}

// YAML decodes a single YAML document into engine values.
func YAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return normalize(v), nil
}

// Auto decodes by file extension: .yaml/.yml as YAML, everything else as
// JSON.
func Auto(name string, data []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML(data)
	}
	return JSON(data)
}

// normalize rewrites decoder-specific shapes into the engine's value model:
// json.Number to int64 or float64, and map keys left as-is (keys are values,
// the engine handles any map type).
func normalize(v any) any {
	switch vv := v.(type) {
	case gojson.Number:
		if i, err := vv.Int64(); err == nil {
			return i
		}
		if f, err := vv.Float64(); err == nil {
			return f
		}
		return vv.String()
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(vv))
		for k, e := range vv {
			out[normalize(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
