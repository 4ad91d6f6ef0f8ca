package dataset

import (
	"encoding/json"
	"errors"
	"os"

	"goscatter/internal/scatter"
)

// Fields added to every GeoJSON record next to the feature properties.
const (
	FieldLon      = "lon"
	FieldLat      = "lat"
	FieldGeometry = "geometry"
)

// LoadGeoJSON reads a GeoJSON file. Each feature becomes one record: its
// properties plus lon/lat of a representative point and the geometry type.
func LoadGeoJSON(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	s, err := ParseGeoJSON(data)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

// ParseGeoJSON decodes a FeatureCollection, a single Feature or a bare
// geometry.
func ParseGeoJSON(data []byte) (Set, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}, err
	}
	return geoJSONSet(raw)
}

func isGeoJSON(obj map[string]any) bool {
	switch obj["type"] {
	case "FeatureCollection", "Feature":
		return true
	}
	return false
}

func geoJSONSet(raw map[string]any) (Set, error) {
	var recs []scatter.Record
	switch t, _ := raw["type"].(string); t {
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				if r, ok := featureRecord(fm); ok {
					recs = append(recs, r)
				}
			}
		}
	case "Feature":
		if r, ok := featureRecord(raw); ok {
			recs = append(recs, r)
		}
	case "":
		return Set{}, errors.New("geojson: missing type")
	default:
		if r, ok := featureRecord(map[string]any{"geometry": raw}); ok {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return Set{}, errors.New("geojson: no features with coordinates")
	}
	return newSet("", recs), nil
}

func featureRecord(f map[string]any) (scatter.Record, bool) {
	g, _ := f["geometry"].(map[string]any)
	if g == nil {
		return nil, false
	}
	var acc centroid
	acc.walk(g)
	if acc.n == 0 {
		return nil, false
	}
	r := scatter.Record{}
	if props, ok := f["properties"].(map[string]any); ok {
		for k, v := range props {
			r[k] = v
		}
	}
	if id, ok := f["id"]; ok {
		if _, taken := r["id"]; !taken {
			r["id"] = id
		}
	}
	r[FieldLon] = acc.x / float64(acc.n)
	r[FieldLat] = acc.y / float64(acc.n)
	r[FieldGeometry], _ = g["type"].(string)
	return r, true
}

// centroid averages every vertex of a geometry. For a Point that is the
// point itself.
type centroid struct {
	x, y float64
	n    int
}

func (c *centroid) walk(g map[string]any) {
	switch g["type"] {
	case "GeometryCollection":
		gs, _ := g["geometries"].([]any)
		for _, sub := range gs {
			if sm, ok := sub.(map[string]any); ok {
				c.walk(sm)
			}
		}
	default:
		c.coords(g["coordinates"])
	}
}

// coords descends nested coordinate arrays down to [lon, lat, ...] pairs.
func (c *centroid) coords(v any) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return
	}
	if lon, ok := arr[0].(float64); ok {
		if len(arr) < 2 {
			return
		}
		if lat, ok := arr[1].(float64); ok {
			c.x += lon
			c.y += lat
			c.n++
		}
		return
	}
	for _, el := range arr {
		c.coords(el)
	}
}
