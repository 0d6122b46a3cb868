package gbd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is one table row keyed by column name.
type Row map[string]any

// Table is an ordered list of rows.
type Table []Row

func isNaNString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "none", "null":
		return true
	}

	return false
}

// Has reports whether the column is present and not null.
func (r Row) Has(col string) bool {
	v, ok := r[col]
	if !ok || v == nil {
		return false
	}

	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return false
	}

	return true
}

// Float reads a numeric column.
func (r Row) Float(col string) Null[float64] {
	switch v := r[col].(type) {
	case float64:
		if math.IsNaN(v) {
			return Unknown[float64]()
		}

		return Known(v)
	case float32:
		if math.IsNaN(float64(v)) {
			return Unknown[float64]()
		}

		return Known(float64(v))
	case int:
		return Known(float64(v))
	case int64:
		return Known(float64(v))
	case int32:
		return Known(float64(v))
	case uint64:
		return Known(float64(v))
	case bool:
		if v {
			return Known(1.0)
		}

		return Known(0.0)
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	default:
		return Unknown[float64]()
	}
}

func parseFloat(s string) Null[float64] {
	if isNaNString(s) {
		return Unknown[float64]()
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return Unknown[float64]()
	}

	return Known(f)
}

// Int reads an integer column. Floats are truncated.
func (r Row) Int(col string) Null[int] {
	switch v := r[col].(type) {
	case int:
		return Known(v)
	case int64:
		return Known(int(v))
	}

	f := r.Float(col)
	if !f.Valid {
		return Unknown[int]()
	}

	return Known(int(f.V))
}

// String reads a text column.
func (r Row) String(col string) Null[string] {
	switch v := r[col].(type) {
	case nil:
		return Unknown[string]()
	case string:
		if strings.EqualFold(strings.TrimSpace(v), "nan") || v == "" {
			return Unknown[string]()
		}

		return Known(v)
	case []byte:
		return Row{col: string(v)}.String(col)
	case float64:
		if math.IsNaN(v) {
			return Unknown[string]()
		}

		return Known(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return Known(fmt.Sprint(v))
	}
}

// Bool reads a flag column. Numbers are true when non-zero.
func (r Row) Bool(col string) Null[bool] {
	switch v := r[col].(type) {
	case bool:
		return Known(v)
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	default:
		f := r.Float(col)
		if !f.Valid {
			return Unknown[bool]()
		}

		return Known(f.V != 0)
	}
}

func parseBool(s string) Null[bool] {
	if isNaNString(s) {
		return Unknown[bool]()
	}

	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		return Known(b)
	}

	if f := parseFloat(s); f.Valid {
		return Known(f.V != 0)
	}

	return Unknown[bool]()
}

// IDs reads a column holding a list of ids. The second result is false when
// the column is absent or not a list.
func (r Row) IDs(col string) ([]int, bool) {
	list, ok := r[col].([]any)
	if !ok {
		return nil, false
	}

	out := make([]int, 0, len(list))
	for _, item := range list {
		if id := (Row{"v": item}).Int("v"); id.Valid {
			out = append(out, id.V)
		}
	}

	return out, true
}
