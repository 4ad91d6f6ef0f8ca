package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"goscatter/internal/scatter"
)

// LoadJSON reads a json file holding an array of objects, or an object with
// the array under "data".
func LoadJSON(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Set{}, err
	}
	s, err := ParseJSON(data)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

// ParseJSON decodes json records.
func ParseJSON(data []byte) (Set, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}, err
	}
	if obj, ok := raw.(map[string]any); ok {
		if isGeoJSON(obj) {
			return geoJSONSet(obj)
		}
		d, present := obj["data"]
		if !present {
			return Set{}, errors.New(`json: object without "data" array`)
		}
		raw = d
	}
	arr, ok := raw.([]any)
	if !ok {
		return Set{}, errors.New("json: expected an array of objects")
	}
	recs, err := recordsFromAny(arr)
	if err != nil {
		return Set{}, fmt.Errorf("json: %w", err)
	}
	return newSet("", recs), nil
}

// recordsFromAny converts decoded objects into records. Nested objects are
// kept as values; only the top level needs to be a mapping.
func recordsFromAny(arr []any) ([]scatter.Record, error) {
	if len(arr) == 0 {
		return nil, errors.New("no records")
	}
	recs := make([]scatter.Record, 0, len(arr))
	for i, el := range arr {
		switch m := el.(type) {
		case map[string]any:
			recs = append(recs, scatter.Record(m))
		default:
			return nil, fmt.Errorf("element %d is %T, not an object", i, el)
		}
	}
	return recs, nil
}
