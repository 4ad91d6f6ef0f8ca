package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for a file extension no loader handles.
var ErrUnsupported = errors.New("unsupported file")

// Options carries source-specific settings.
type Options struct {
	// Query selects records from a sqlite database.
	Query string
}

// Load picks a loader by file extension.
func Load(ctx context.Context, path string, opts Options) (Set, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".geojson":
		return LoadGeoJSON(path)
	case ".kml":
		return LoadKML(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path, opts.Query)
	}
	return Set{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Supported reports whether Load understands name's extension.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".json", ".geojson", ".kml", ".yaml", ".yml", ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Parse sniffs pasted text: json when it opens with '[' or '{', csv otherwise.
func Parse(text string) (Set, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return Set{}, errors.New("empty input")
	}
	if t[0] == '[' || t[0] == '{' {
		return ParseJSON([]byte(t))
	}
	return ParseCSV(strings.NewReader(t))
}
