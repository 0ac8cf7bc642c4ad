// Package geo handles geographic data structures and coordinate conversions.
package geo

import "github.com/paulmach/orb"

// GeoJSON type tags.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
	TypeCRSName           = "name"
)

// GeoJSONFeatureCollection represents a collection of geographic features.
// Field order is the serialization order: type, crs, features.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	CRS      *GeoJSONCRS      `json:"crs,omitempty" yaml:"crs,omitempty"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONCRS is the named coordinate reference system member.
type GeoJSONCRS struct {
	Type       string               `json:"type" yaml:"type"`
	Properties GeoJSONCRSProperties `json:"properties" yaml:"properties"`
}

// GeoJSONCRSProperties holds the CRS name, e.g. "EPSG:3857".
type GeoJSONCRSProperties struct {
	Name string `json:"name" yaml:"name"`
}

// GeoJSONFeature represents a single point feature with its attributes.
type GeoJSONFeature struct {
	Type       string          `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry `json:"geometry" yaml:"geometry"`
	Properties Properties      `json:"properties" yaml:"properties"`
}

// GeoJSONGeometry represents a point geometry.
type GeoJSONGeometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates orb.Point `json:"coordinates" yaml:"coordinates"` // [x, y]
}

// NewFeatureCollection wraps features, tagging the collection with crs unless it is empty.
func NewFeatureCollection(crs string, features []GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}

	fc := GeoJSONFeatureCollection{
		Type:     TypeFeatureCollection,
		Features: features,
	}
	if crs != "" {
		fc.CRS = &GeoJSONCRS{
			Type:       TypeCRSName,
			Properties: GeoJSONCRSProperties{Name: crs},
		}
	}

	return fc
}

// NewPointFeature builds a feature around a point. Properties are taken as is.
func NewPointFeature(pt orb.Point, props Properties) GeoJSONFeature {
	return GeoJSONFeature{
		Type: TypeFeature,
		Geometry: GeoJSONGeometry{
			Type:        TypePoint,
			Coordinates: pt,
		},
		Properties: props,
	}
}

// CRSName returns the tagged CRS name, or EPSG:4326 for an untagged collection.
func (fc GeoJSONFeatureCollection) CRSName() string {
	if fc.CRS == nil || fc.CRS.Properties.Name == "" {
		return CRSWGS84
	}
	return fc.CRS.Properties.Name
}

// Bound returns the bounding box of all feature points.
func (fc GeoJSONFeatureCollection) Bound() orb.Bound {
	if len(fc.Features) == 0 {
		return orb.Bound{}
	}

	b := fc.Features[0].Geometry.Coordinates.Bound()
	for _, f := range fc.Features[1:] {
		b = b.Extend(f.Geometry.Coordinates)
	}

	return b
}
