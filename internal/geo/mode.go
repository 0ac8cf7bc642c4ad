package geo

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Mode selects how source coordinates are mapped into the output document.
type Mode int

const (
	// Geographic keeps WGS84 lon/lat as is (EPSG:4326, untagged output).
	Geographic Mode = iota
	// Mercator projects to spherical Web Mercator (EPSG:3857, tagged output).
	Mercator
)

// CRS names used to tag collections.
const (
	CRSWGS84       = "EPSG:4326"
	CRSWebMercator = "EPSG:3857"
)

// ParseMode accepts the mode name, a common alias or the EPSG code.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "geographic", "wgs84", "4326", "epsg:4326":
		return Geographic, nil
	case "mercator", "webmercator", "web-mercator", "3857", "epsg:3857":
		return Mercator, nil
	default:
		return Geographic, fmt.Errorf("unknown coordinate mode %q", s)
	}
}

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case Geographic:
		return "geographic"
	case Mercator:
		return "mercator"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Transform maps lon/lat in decimal degrees to the output point for this mode.
func (m Mode) Transform(lon, lat float64) (orb.Point, error) {
	switch m {
	case Mercator:
		return LonLatToMercator(lon, lat)
	default:
		return Identity(lon, lat), nil
	}
}

// CRS returns the name the collection is tagged with, empty for the untagged WGS84 default.
func (m Mode) CRS() string {
	if m == Mercator {
		return CRSWebMercator
	}
	return ""
}

// EPSG returns the EPSG code of the output coordinates.
func (m Mode) EPSG() int {
	if m == Mercator {
		return 3857
	}
	return 4326
}
