package geo

import (
	"math"

	"github.com/frankchang1000/csv2geojson/internal/failure"

	"github.com/paulmach/orb"
)

// EarthRadius is the WGS84 semi-major axis used as the sphere radius for Web Mercator.
const EarthRadius = 6378137.0

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Identity returns the geographic coordinates unchanged, x=lon, y=lat.
func Identity(lon, lat float64) orb.Point {
	return orb.Point{lon, lat}
}

// LonLatToMercator projects WGS84 decimal degrees to spherical Web Mercator meters (EPSG:3857).
//
//	x = R * lon * PI/180
//	y = R * ln(tan(PI/4 + lat*PI/360))
//
// y is evaluated as R * asinh(tan(lat)), which is the same function but returns an exact
// zero on the equator and stays finite up to the pole. Latitude must lie strictly inside
// (-90, 90); longitude is not wrapped. A non-finite result is reported as out of domain.
func LonLatToMercator(lon, lat float64) (orb.Point, error) {
	if math.IsNaN(lat) || lat <= -90 || lat >= 90 {
		return orb.Point{}, failure.Newf(failure.OutOfDomain,
			"latitude %v outside the Web Mercator domain (-90, 90)", lat)
	}

	x := EarthRadius * lon * degToRad
	y := EarthRadius * math.Asinh(math.Tan(lat*degToRad))

	if math.IsInf(x, 0) || math.IsNaN(x) || math.IsInf(y, 0) || math.IsNaN(y) {
		return orb.Point{}, failure.Newf(failure.OutOfDomain,
			"(%v, %v) has no finite Web Mercator position", lon, lat)
	}

	// no negative zero in the output document
	if x == 0 {
		x = 0
	}
	if y == 0 {
		y = 0
	}

	return orb.Point{x, y}, nil
}

// MercatorToLonLat converts Web Mercator meters back to WGS84 (Lon/Lat).
func MercatorToLonLat(x, y float64) orb.Point {
	lon := x / EarthRadius * radToDeg
	lat := (2.0*math.Atan(math.Exp(y/EarthRadius)) - math.Pi*0.5) * radToDeg

	return orb.Point{lon, lat}
}
