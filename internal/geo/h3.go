package geo

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// H3 resolution bounds.
const (
	H3MinResolution = 0
	H3MaxResolution = 15
)

// H3Cell returns the hex id of the H3 cell containing the WGS84 point.
func H3Cell(lon, lat float64, resolution int) (string, error) {
	if resolution < H3MinResolution || resolution > H3MaxResolution {
		return "", fmt.Errorf("h3 resolution %d outside [%d, %d]", resolution, H3MinResolution, H3MaxResolution)
	}

	latLng := h3.NewLatLng(lat, lon)
	cell := h3.LatLngToCell(latLng, resolution)

	return cell.String(), nil
}
