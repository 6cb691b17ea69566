// Package output renders decoded API results as JSON or as a text table,
// optionally after running a jq query over them.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

// Format selects how results are written
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTable:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be 'json' or 'table')", s)
	}
}

// Options controls Write
type Options struct {
	Query   string
	Compact bool
	Format  Format
}

// Write applies the optional query and writes v to w
func Write(w io.Writer, v any, opts Options) error {
	if opts.Query != "" {
		result, err := Query(v, opts.Query)
		if err != nil {
			return err
		}
		v = result
	}

	// Plain text bodies are printed as they came
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	if opts.Format == FormatTable {
		rows, err := Generic(v)
		if err != nil {
			return err
		}
		if ok, err := writeTable(w, rows); ok || err != nil {
			return err
		}
	}

	return WriteJSON(w, v, opts.Compact)
}

// WriteJSON writes v as indented or compact JSON followed by a newline
func WriteJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// writeTable renders arrays of objects, and objects of objects keyed by the
// first column. It reports false when v has neither shape.
func writeTable(w io.Writer, v any) (bool, error) {
	var (
		rows    []map[string]any
		keyed   bool
		rowKeys []string
	)

	switch t := v.(type) {
	case []any:
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				return false, nil
			}
			rows = append(rows, m)
		}
	case map[string]any:
		rowKeys = sortedKeys(t)
		for _, k := range rowKeys {
			m, ok := t[k].(map[string]any)
			if !ok {
				return false, nil
			}
			rows = append(rows, m)
		}
		keyed = true
	default:
		return false, nil
	}

	columns := collectColumns(rows)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := columns
	if keyed {
		header = append([]string{"key"}, columns...)
	}
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))

	for i, row := range rows {
		cells := make([]string, 0, len(header))
		if keyed {
			cells = append(cells, rowKeys[i])
		}
		for _, col := range columns {
			cells = append(cells, cell(row[col]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return true, tw.Flush()
}

// collectColumns returns the union of row keys, sorted
func collectColumns(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	slices.Sort(columns)
	return columns
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case json.Number:
		return t.String()
	case map[string]any, []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
