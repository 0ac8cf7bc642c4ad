package processor

import (
	"math"
	"strconv"
	"strings"

	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/geo"
	"github.com/frankchang1000/csv2geojson/internal/records"

	"github.com/paulmach/orb"
)

// PropertyH3 is the property added when H3 enrichment is enabled.
const PropertyH3 = "h3"

// Assemble builds a point feature from a record. The coordinate fields are dropped,
// every other field is copied verbatim in header order, then extra is appended.
func Assemble(rec records.Record, pt orb.Point, extra ...geo.Property) geo.GeoJSONFeature {
	props := make(geo.Properties, 0, rec.Len()+len(extra))
	rec.Each(func(name, value string) {
		if name == records.FieldLatitude || name == records.FieldLongitude {
			return
		}
		props.Set(name, value)
	})
	for _, kv := range extra {
		props.Set(kv.Key, kv.Value)
	}

	return geo.NewPointFeature(pt, props)
}

// Coordinates parses the longitude and latitude fields of a record.
func Coordinates(rec records.Record) (lon, lat float64, err error) {
	lon, err = parseCoordinate(rec, records.FieldLongitude)
	if err != nil {
		return 0, 0, err
	}
	lat, err = parseCoordinate(rec, records.FieldLatitude)
	if err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

func parseCoordinate(rec records.Record, field string) (float64, error) {
	raw, ok := rec.Get(field)
	if !ok {
		return 0, failure.Newf(failure.MalformedInput, "record has no %q field", field).
			AtRow(rec.Row()).
			AtLine(rec.Line()).
			InField(field)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = strconv.ErrRange
	}
	if err != nil {
		return 0, failure.Newf(failure.CoordinateParse, "%q is not a finite number: %w", raw, err).
			AtRow(rec.Row()).
			AtLine(rec.Line()).
			InField(field)
	}

	return v, nil
}

// feature runs one record through the job's transform and assembler.
func (j Job) feature(rec records.Record) (geo.GeoJSONFeature, error) {
	lon, lat, err := Coordinates(rec)
	if err != nil {
		return geo.GeoJSONFeature{}, err
	}

	pt, err := j.Mode.Transform(lon, lat)
	if err != nil {
		if fe, ok := failure.As(err); ok {
			fe.AtRow(rec.Row()).AtLine(rec.Line()).InField(records.FieldLatitude)
		}
		return geo.GeoJSONFeature{}, err
	}

	var extra []geo.Property
	if j.H3 {
		cell, err := geo.H3Cell(lon, lat, j.H3Resolution)
		if err != nil {
			return geo.GeoJSONFeature{}, err
		}
		extra = append(extra, geo.Property{Key: PropertyH3, Value: cell})
	}

	return Assemble(rec, pt, extra...), nil
}
