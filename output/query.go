package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// Query runs a jq expression over v. A single result is returned as is,
// several results as an array.
func Query(v any, expression string) (any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return v, nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	input, err := Generic(v)
	if err != nil {
		return nil, err
	}

	iter := query.Run(jqValue(input))

	var results []any
	for {
		r, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := r.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, r)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// jqValue converts json.Number values to the numeric types gojq works with
func jqValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jqValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jqValue(val)
		}
		return out
	default:
		return v
	}
}

// Generic turns typed values such as structs and typed maps into the
// map[string]any and []any shapes produced by decoding JSON.
func Generic(v any) (any, error) {
	switch v.(type) {
	case nil, bool, string, json.Number, map[string]any, []any:
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}
