package dataset

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"goscatter/internal/scatter"
)

// LoadKML reads Point placemarks from a KML file. A record holds the
// placemark name and description, lon/lat/alt, and its ExtendedData values.
func LoadKML(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, err
	}
	defer f.Close()
	s, err := ParseKML(f)
	if err != nil {
		return Set{}, err
	}
	s.Source = path
	return s, nil
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlSimpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	Data       []kmlData       `xml:"ExtendedData>Data"`
	SimpleData []kmlSimpleData `xml:"ExtendedData>SchemaData>SimpleData"`
}

// ParseKML decodes placemarks anywhere under the document, folders included.
func ParseKML(r io.Reader) (Set, error) {
	dec := xml.NewDecoder(r)
	var recs []scatter.Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Set{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Set{}, err
		}
		if rec, ok := placemarkRecord(pm); ok {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		return Set{}, errors.New("kml: no points found")
	}
	return newSet("", recs), nil
}

func placemarkRecord(pm kmlPlacemark) (scatter.Record, bool) {
	if pm.Point == nil {
		return nil, false
	}
	// "lon,lat[,alt]"; only the first tuple of a point is used
	tuples := strings.Fields(pm.Point.Coordinates)
	if len(tuples) == 0 {
		return nil, false
	}
	vals := strings.Split(tuples[0], ",")
	if len(vals) < 2 {
		return nil, false
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	r := scatter.Record{}
	for _, d := range pm.SimpleData {
		r[d.Name] = strings.TrimSpace(d.Value)
	}
	for _, d := range pm.Data {
		r[d.Name] = strings.TrimSpace(d.Value)
	}
	r["name"] = strings.TrimSpace(pm.Name)
	if pm.Description != "" {
		r["description"] = strings.TrimSpace(pm.Description)
	}
	r[FieldLon] = lon
	r[FieldLat] = lat
	if len(vals) > 2 {
		if alt, err := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64); err == nil {
			r["alt"] = alt
		}
	}
	return r, true
}
