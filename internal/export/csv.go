// Package export turns admin tables into CSV files. Columns are JMESPath expressions evaluated
// against the JSON form of each row, so presets can reshape a dataset without code changes.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Column is one CSV column.
type Column struct {
	Header string `yaml:"header" json:"header"`
	Expr   string `yaml:"expr"   json:"expr"`
}

// Validate checks the header is present and the expression compiles.
func (c Column) Validate() error {
	if strings.TrimSpace(c.Header) == "" {
		return errors.New("column header is required")
	}
	if strings.TrimSpace(c.Expr) == "" {
		return fmt.Errorf("column %q: expression is required", c.Header)
	}
	if _, err := jmespath.Compile(c.Expr); err != nil {
		return fmt.Errorf("column %q: invalid expression: %w", c.Header, err)
	}
	return nil
}

// WriteCSV writes a header line followed by one line per row. Quoting of commas, quotes and
// newlines follows RFC 4180, so N rows always produce N+1 records.
func WriteCSV[T any](w io.Writer, columns []Column, rows []T) error {
	if len(columns) == 0 {
		return errors.New("at least one column is required")
	}
	for _, c := range columns {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	compiled := make([]jmespath.JMESPath, len(columns))
	for i, c := range columns {
		compiled[i] = jmespath.MustCompile(c.Expr)
	}

	record := make([]string, len(columns))
	for n, row := range rows {
		doc, exact, err := toDocuments(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", n, err)
		}
		for i, c := range columns {
			v, err := compiled[i].Search(doc)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", n, c.Header, err)
			}
			record[i] = cell(v, exactValue(compiled[i], exact, v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", n, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// toDocuments converts a row into the generic map/slice form JMESPath walks. doc carries numbers
// as float64, which JMESPath functions require; exact keeps each number's original JSON text.
func toDocuments(row any) (doc, exact any, err error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, nil, fmt.Errorf("encode row: %w", err)
	}
	if err := decodeNumbers(raw, &exact); err != nil {
		return nil, nil, err
	}
	if err := decodeNumbers(raw, &doc); err != nil {
		return nil, nil, err
	}
	return normalizeNumbers(doc), exact, nil
}

func decodeNumbers(raw []byte, out *any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}

// exactValue re-runs expr against the exact document when the result holds numbers, so money
// keeps its pence ("120.50") and large values keep every digit. Nil means render v as is.
func exactValue(expr jmespath.JMESPath, exact, v any) any {
	if !hasNumber(v) {
		return nil
	}
	ev, err := expr.Search(exact)
	if err != nil {
		return nil
	}
	return ev
}

func hasNumber(v any) bool {
	switch t := v.(type) {
	case float64:
		return true
	case []any:
		for _, e := range t {
			if hasNumber(e) {
				return true
			}
		}
	}
	return false
}

// normalizeNumbers turns json.Number into float64.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	default:
		return v
	}
}

// numberText returns the original text of exact when it denotes the same number as f.
// Computed results (sums, comparisons on the float document) fall back to f.
func numberText(f float64, exact any) (string, bool) {
	n, ok := exact.(json.Number)
	if !ok {
		return "", false
	}
	ef, err := n.Float64()
	if err != nil || ef != f {
		return "", false
	}
	return n.String(), true
}

func cell(v, exact any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if text, ok := numberText(t, exact); ok {
			return text
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		exactItems, _ := exact.([]any)
		if len(exactItems) != len(t) {
			exactItems = nil
		}
		parts := make([]string, 0, len(t))
		for i, p := range t {
			var e any
			if exactItems != nil {
				e = exactItems[i]
			}
			parts = append(parts, cell(p, e))
		}
		return strings.Join(parts, "; ")
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	}
}
