package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"goscatter/internal/scatter"
)

// LoadCSV reads a csv file whose header row names the fields.
func LoadCSV(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()
	s, err := ParseCSV(f)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

// ParseCSV reads csv text. Values stay strings; scatter.Record coerces them
// when a numeric field is needed. Short rows are padded with "". Fields keep
// the header's column order.
func ParseCSV(r io.Reader) (Set, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return Set{}, err
	}
	if len(rows) == 0 {
		return Set{}, errors.New("empty csv")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if len(rows) == 1 {
		return Set{}, errors.New("csv: no data rows")
	}
	recs := make([]scatter.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(scatter.Record, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		recs = append(recs, rec)
	}
	return Set{Records: recs, Fields: header}, nil
}
