package processor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/geo"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Summary describes a produced document.
type Summary struct {
	CRS        string    `json:"crs" yaml:"crs"`
	Properties []string  `json:"properties" yaml:"properties"`
	Bound      orb.Bound `json:"bound" yaml:"bound"`
	Features   int       `json:"features" yaml:"features"`
}

// LoadGeoJSON reads a document written by Run. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadGeoJSON(path string) (geo.GeoJSONFeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geo.GeoJSONFeatureCollection{}, failure.New(failure.SourceNotFound, err).WithPath(path)
	}

	var fc geo.GeoJSONFeatureCollection
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return geo.GeoJSONFeatureCollection{}, failure.New(failure.MalformedInput, err).WithPath(path)
	}
	if fc.Type != geo.TypeFeatureCollection {
		return geo.GeoJSONFeatureCollection{}, failure.Newf(failure.MalformedInput,
			"expected type %q, got %q", geo.TypeFeatureCollection, fc.Type).WithPath(path)
	}

	return fc, nil
}

// Summarize collects the feature count, CRS, bounding box and the union of property keys
// in first-seen order. With unproject, a Web Mercator bound is converted back to lon/lat.
func Summarize(fc geo.GeoJSONFeatureCollection, unproject bool) Summary {
	s := Summary{
		CRS:        fc.CRSName(),
		Features:   len(fc.Features),
		Bound:      fc.Bound(),
		Properties: []string{},
	}

	seen := make(map[string]bool)
	for _, f := range fc.Features {
		for _, key := range f.Properties.Keys() {
			if !seen[key] {
				seen[key] = true
				s.Properties = append(s.Properties, key)
			}
		}
	}

	if unproject && s.CRS == geo.CRSWebMercator && s.Features > 0 {
		s.Bound = orb.Bound{
			Min: geo.MercatorToLonLat(s.Bound.Min.X(), s.Bound.Min.Y()),
			Max: geo.MercatorToLonLat(s.Bound.Max.X(), s.Bound.Max.Y()),
		}
		s.CRS = geo.CRSWGS84
	}

	return s
}

// String renders the summary as one line.
func (s Summary) String() string {
	return fmt.Sprintf("%d features, crs %s, bbox [%g %g %g %g], properties %s",
		s.Features, s.CRS,
		s.Bound.Min.X(), s.Bound.Min.Y(), s.Bound.Max.X(), s.Bound.Max.Y(),
		strings.Join(s.Properties, ","))
}
