package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"goscatter/internal/scatter"
)

// ErrNoQuery is returned when a sqlite source is opened without a query.
var ErrNoQuery = errors.New("sqlite: query required")

// LoadSQLite runs query against the database at path (opened read-only) and
// returns one record per row, keyed by result column name.
func LoadSQLite(ctx context.Context, path, query string) (Set, error) {
	if query == "" {
		return Set{}, ErrNoQuery
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return Set{}, fmt.Errorf("sqlite open: %w", err)
	}
	defer db.Close()
	s, err := QueryRecords(ctx, db, query)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

// QueryRecords runs query on db and converts the result rows to records.
func QueryRecords(ctx context.Context, db *sql.DB, query string) (Set, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Set{}, fmt.Errorf("sqlite query: %w", err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return Set{}, fmt.Errorf("sqlite columns: %w", err)
	}
	var recs []scatter.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Set{}, fmt.Errorf("sqlite scan: %w", err)
		}
		rec := make(scatter.Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				rec[c] = string(b)
			} else {
				rec[c] = vals[i]
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return Set{}, fmt.Errorf("sqlite rows: %w", err)
	}
	if len(recs) == 0 {
		return Set{}, errors.New("sqlite: query returned no rows")
	}
	return Set{Records: recs, Fields: cols}, nil
}
