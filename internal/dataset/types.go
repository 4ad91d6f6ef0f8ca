// Package dataset loads scatter records from csv, json, geojson, kml, yaml
// and sqlite sources.
package dataset

import (
	"fmt"
	"sort"

	"goscatter/internal/scatter"
)

// Set is a loaded dataset.
type Set struct {
	Records []scatter.Record
	Fields  []string // union of field names, first-seen order
	Source  string
}

func newSet(source string, recs []scatter.Record) Set {
	return Set{Records: recs, Fields: Fields(recs), Source: source}
}

// Fields returns the union of record keys. Keys of the first record come
// first; later records only append keys not seen yet. Within one record
// unseen keys are added in sorted order, since maps carry no order.
func Fields(recs []scatter.Record) []string {
	seen := map[string]bool{}
	var order []string
	for _, r := range recs {
		for _, k := range sortedKeys(r) {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	return order
}

// Rows flattens records into display rows over fields.
func Rows(recs []scatter.Record, fields []string) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		vals := make([]string, 0, len(fields))
		for _, f := range fields {
			vals = append(vals, r.Text(f))
		}
		rows = append(rows, vals)
	}
	return rows
}

// Summary is a one-line description for status bars.
func (s Set) Summary() string {
	return fmt.Sprintf("records=%d fields=%d", len(s.Records), len(s.Fields))
}

func sortedKeys(r scatter.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
