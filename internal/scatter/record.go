package scatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one row of the input dataset: an open field name -> value mapping.
type Record map[string]any

// Number coerces a field to a float. Numbers pass through, strings are
// trimmed and parsed (an empty string is 0), booleans are 0/1. Anything else
// yields NaN and ok=false.
func (r Record) Number(field string) (float64, bool) {
	v, present := r[field]
	if !present || v == nil {
		return math.NaN(), false
	}
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), !math.IsNaN(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	case []byte:
		return Record{field: string(t)}.Number(field)
	}
	return math.NaN(), false
}

// Text renders a field verbatim for display. Missing values are "".
func (r Record) Text(field string) string {
	v, present := r[field]
	if !present || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Categories returns the distinct values of field in first-seen order.
// Records without the field do not contribute.
func Categories(data []Record, field string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range data {
		if !r.Has(field) {
			continue
		}
		c := r.Text(field)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// DetailLine formats a record for the selection list, e.g.
// "Model: Civic, MPG: 36, Price: 22000".
func DetailLine(r Record, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+r.Text(f))
	}
	return strings.Join(parts, ", ")
}
